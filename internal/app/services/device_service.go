package services

import (
	"context"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/repositories"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type deviceStore interface {
	GetAll(ctx context.Context, filter repositories.DeviceFilter) ([]*models.Device, error)
	GetByID(ctx context.Context, id int64) (*models.Device, error)
	Create(ctx context.Context, device *models.Device) error
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id int64) error
	ListByNeed(ctx context.Context, needID int64) ([]models.AssignedDevice, error)
	AssignToNeed(ctx context.Context, assignment *models.NeedDeviceAssignment) error
	RemoveFromNeed(ctx context.Context, needID, deviceID int64) error
}

// DeviceService manages the equipment inventory and its assignments to needs
type DeviceService struct {
	devices    deviceStore
	needs      needGetter
	categories categoryGetter
}

// NewDeviceService creates a new device service
func NewDeviceService(devices deviceStore, needs needGetter, categories categoryGetter) *DeviceService {
	return &DeviceService{
		devices:    devices,
		needs:      needs,
		categories: categories,
	}
}

// GetDevices returns devices matching the filter
func (s *DeviceService) GetDevices(ctx context.Context, filter repositories.DeviceFilter) ([]*models.Device, error) {
	return s.devices.GetAll(ctx, filter)
}

// GetUnassignedDevices returns devices not currently assigned to any need
func (s *DeviceService) GetUnassignedDevices(ctx context.Context) ([]*models.Device, error) {
	return s.devices.GetAll(ctx, repositories.DeviceFilter{Unassigned: true})
}

// GetDeviceByID returns one device
func (s *DeviceService) GetDeviceByID(ctx context.Context, id int64) (*models.Device, error) {
	return s.devices.GetByID(ctx, id)
}

// CreateDevice adds a device to the inventory
func (s *DeviceService) CreateDevice(ctx context.Context, device *models.Device) error {
	if err := s.validateDevice(ctx, device); err != nil {
		return err
	}
	return s.devices.Create(ctx, device)
}

// UpdateDevice replaces the fields of a device
func (s *DeviceService) UpdateDevice(ctx context.Context, device *models.Device) error {
	if err := s.validateDevice(ctx, device); err != nil {
		return err
	}
	return s.devices.Update(ctx, device)
}

// DeleteDevice removes a device and its need assignments
func (s *DeviceService) DeleteDevice(ctx context.Context, id int64) error {
	return s.devices.Delete(ctx, id)
}

// GetDevicesForNeed returns devices assigned to a need
func (s *DeviceService) GetDevicesForNeed(ctx context.Context, needID int64) ([]models.AssignedDevice, error) {
	if _, err := s.needs.GetByID(ctx, needID); err != nil {
		return nil, err
	}
	return s.devices.ListByNeed(ctx, needID)
}

// AssignDeviceToNeed links a device to a need. Assigning the same pair twice
// fails with a duplicate assignment error.
func (s *DeviceService) AssignDeviceToNeed(ctx context.Context, assignment *models.NeedDeviceAssignment) error {
	if _, err := s.needs.GetByID(ctx, assignment.NeedID); err != nil {
		return err
	}
	if _, err := s.devices.GetByID(ctx, assignment.DeviceID); err != nil {
		return err
	}
	return s.devices.AssignToNeed(ctx, assignment)
}

// RemoveDeviceFromNeed unlinks a device from a need
func (s *DeviceService) RemoveDeviceFromNeed(ctx context.Context, needID, deviceID int64) error {
	return s.devices.RemoveFromNeed(ctx, needID, deviceID)
}

func (s *DeviceService) validateDevice(ctx context.Context, device *models.Device) error {
	if strings.TrimSpace(device.Name) == "" {
		return apperrors.NewValidationError("device name cannot be empty")
	}

	if device.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *device.CategoryID); err != nil {
			return err
		}
	}

	return nil
}
