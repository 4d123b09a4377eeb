package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
	"github.com/oakmere/senreg/internal/pkg/dberrors"
)

// DeviceFilter narrows device listings. Zero values mean no filtering.
type DeviceFilter struct {
	Status     string
	CategoryID int64
	Unassigned bool
}

// DeviceRepository handles database operations for devices and their
// assignments to needs.
type DeviceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new device
func (r *DeviceRepository) Create(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO device (name, model, serial_number, purchase_date, warranty_info, status, notes, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING device_id
	`

	err := r.db.QueryRow(ctx, query,
		device.Name, device.Model, device.SerialNumber, device.PurchaseDate,
		device.WarrantyInfo, device.Status, device.Notes, device.CategoryID,
	).Scan(&device.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "device_category_id_fkey") {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("error creating device: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// GetByID retrieves a device by ID with its category name, when any
func (r *DeviceRepository) GetByID(ctx context.Context, id int64) (*models.Device, error) {
	query := `
		SELECT d.device_id, d.name, COALESCE(d.model, ''), COALESCE(d.serial_number, ''),
			d.purchase_date, COALESCE(d.warranty_info, ''), COALESCE(d.status, ''),
			COALESCE(d.notes, ''), d.category_id, COALESCE(c.category_name, '')
		FROM device d
		LEFT JOIN category c ON d.category_id = c.category_id
		WHERE d.device_id = $1
	`

	var device models.Device
	err := r.db.QueryRow(ctx, query, id).Scan(
		&device.ID,
		&device.Name,
		&device.Model,
		&device.SerialNumber,
		&device.PurchaseDate,
		&device.WarrantyInfo,
		&device.Status,
		&device.Notes,
		&device.CategoryID,
		&device.CategoryName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("error retrieving device: %w: %w", apperrors.ErrStorage, err)
	}

	return &device, nil
}

// GetAll retrieves devices matching the filter, ordered by name
func (r *DeviceRepository) GetAll(ctx context.Context, filter DeviceFilter) ([]*models.Device, error) {
	builder := r.sb.
		Select("d.device_id", "d.name", "COALESCE(d.model, '')", "COALESCE(d.serial_number, '')",
			"d.purchase_date", "COALESCE(d.warranty_info, '')", "COALESCE(d.status, '')",
			"COALESCE(d.notes, '')", "d.category_id", "COALESCE(c.category_name, '')").
		From("device d").
		LeftJoin("category c ON d.category_id = c.category_id").
		OrderBy("d.name")

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"d.status": filter.Status})
	}
	if filter.CategoryID > 0 {
		builder = builder.Where(squirrel.Eq{"d.category_id": filter.CategoryID})
	}
	if filter.Unassigned {
		builder = builder.Where("d.device_id NOT IN (SELECT DISTINCT device_id FROM need_device)")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building device query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []*models.Device
	for rows.Next() {
		var device models.Device
		if err := rows.Scan(
			&device.ID,
			&device.Name,
			&device.Model,
			&device.SerialNumber,
			&device.PurchaseDate,
			&device.WarrantyInfo,
			&device.Status,
			&device.Notes,
			&device.CategoryID,
			&device.CategoryName,
		); err != nil {
			return nil, err
		}
		devices = append(devices, &device)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}

// Update updates an existing device
func (r *DeviceRepository) Update(ctx context.Context, device *models.Device) error {
	query := `
		UPDATE device
		SET name = $2, model = $3, serial_number = $4, purchase_date = $5,
			warranty_info = $6, status = $7, notes = $8, category_id = $9
		WHERE device_id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		device.ID, device.Name, device.Model, device.SerialNumber, device.PurchaseDate,
		device.WarrantyInfo, device.Status, device.Notes, device.CategoryID,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "device_category_id_fkey") {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("error updating device: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDeviceNotFound
	}

	return nil
}

// Delete deletes a device by ID; assignment rows go with it
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM device WHERE device_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting device: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDeviceNotFound
	}

	return nil
}

// ListByNeed retrieves the devices assigned to a need with assignment details
func (r *DeviceRepository) ListByNeed(ctx context.Context, needID int64) ([]models.AssignedDevice, error) {
	query := `
		SELECT d.device_id, d.name, COALESCE(d.model, ''), COALESCE(d.serial_number, ''),
			nd.need_id, n.name, nd.assignment_date, COALESCE(nd.notes, '')
		FROM need_device nd
		JOIN device d ON nd.device_id = d.device_id
		JOIN need n ON nd.need_id = n.need_id
		WHERE nd.need_id = $1
		ORDER BY d.name
	`

	rows, err := r.db.Query(ctx, query, needID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignedDevices(rows)
}

// ListByNeedIDs retrieves devices assigned to any of the given needs, for the
// pupil profile. An empty id list short-circuits to no devices.
func (r *DeviceRepository) ListByNeedIDs(ctx context.Context, needIDs []int64) ([]models.AssignedDevice, error) {
	if len(needIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT d.device_id, d.name, COALESCE(d.model, ''), COALESCE(d.serial_number, ''),
			nd.need_id, n.name, nd.assignment_date, COALESCE(nd.notes, '')
		FROM need_device nd
		JOIN device d ON nd.device_id = d.device_id
		JOIN need n ON nd.need_id = n.need_id
		WHERE nd.need_id = ANY($1)
		ORDER BY d.name
	`

	rows, err := r.db.Query(ctx, query, needIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignedDevices(rows)
}

// AssignToNeed creates an assignment edge between a need and a device
func (r *DeviceRepository) AssignToNeed(ctx context.Context, assignment *models.NeedDeviceAssignment) error {
	query := `
		INSERT INTO need_device (need_id, device_id, assignment_date, notes)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		assignment.NeedID, assignment.DeviceID, assignment.AssignmentDate, assignment.Notes)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "need_device_pkey") {
			return apperrors.ErrDuplicateDeviceAssignment
		}
		return fmt.Errorf("error assigning device to need: %w: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// RemoveFromNeed deletes an assignment edge
func (r *DeviceRepository) RemoveFromNeed(ctx context.Context, needID, deviceID int64) error {
	query := `DELETE FROM need_device WHERE need_id = $1 AND device_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, needID, deviceID)
	if err != nil {
		return fmt.Errorf("error removing device from need: %w: %w", apperrors.ErrStorage, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDeviceAssignmentNotFound
	}

	return nil
}

func scanAssignedDevices(rows pgx.Rows) ([]models.AssignedDevice, error) {
	var devices []models.AssignedDevice
	for rows.Next() {
		var device models.AssignedDevice
		if err := rows.Scan(
			&device.DeviceID,
			&device.DeviceName,
			&device.Model,
			&device.SerialNumber,
			&device.NeedID,
			&device.NeedName,
			&device.AssignmentDate,
			&device.Notes,
		); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}
