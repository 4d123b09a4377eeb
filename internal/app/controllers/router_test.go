package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/senreg/internal/app/controllers"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/repositories"
	"github.com/oakmere/senreg/internal/app/routes"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

// In-memory stores backing a full router for handler tests. Each store
// implements the same interface its pgx counterpart does.

type memPupils struct {
	rows   map[int64]*models.Pupil
	nextID int64
}

func (m *memPupils) GetByID(_ context.Context, id int64) (*models.Pupil, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrPupilNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memPupils) GetAll(_ context.Context) ([]*models.Pupil, error) {
	result := make([]*models.Pupil, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	sortPupils(result)
	return result, nil
}

func (m *memPupils) SearchByName(_ context.Context, fragment string) ([]*models.Pupil, error) {
	needle := strings.ToLower(fragment)
	var result []*models.Pupil
	for _, row := range m.rows {
		if strings.Contains(strings.ToLower(row.FirstName+" "+row.LastName), needle) {
			result = append(result, row)
		}
	}
	sortPupils(result)
	return result, nil
}

func (m *memPupils) Create(_ context.Context, pupil *models.Pupil) error {
	m.nextID++
	pupil.ID = m.nextID
	stored := *pupil
	m.rows[pupil.ID] = &stored
	return nil
}

func (m *memPupils) Update(_ context.Context, pupil *models.Pupil) error {
	if _, ok := m.rows[pupil.ID]; !ok {
		return apperrors.ErrPupilNotFound
	}
	stored := *pupil
	m.rows[pupil.ID] = &stored
	return nil
}

func (m *memPupils) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrPupilNotFound
	}
	delete(m.rows, id)
	return nil
}

func sortPupils(pupils []*models.Pupil) {
	sort.Slice(pupils, func(i, j int) bool {
		if pupils[i].LastName != pupils[j].LastName {
			return pupils[i].LastName < pupils[j].LastName
		}
		return pupils[i].FirstName < pupils[j].FirstName
	})
}

type memForms struct {
	rows map[int64]*models.Form
}

func (m *memForms) GetByID(_ context.Context, id int64) (*models.Form, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrFormNotFound
	}
	return row, nil
}

func (m *memForms) GetAll(_ context.Context) ([]*models.Form, error) {
	result := make([]*models.Form, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	return result, nil
}

type memNeeds struct {
	rows   map[int64]*models.Need
	nextID int64
	db     *memState
}

func (m *memNeeds) GetByID(_ context.Context, id int64) (*models.Need, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNeedNotFound
	}
	return row, nil
}

func (m *memNeeds) GetAll(_ context.Context) ([]*models.Need, error) {
	result := make([]*models.Need, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memNeeds) Create(_ context.Context, need *models.Need) error {
	m.nextID++
	need.ID = m.nextID
	m.rows[need.ID] = need
	return nil
}

func (m *memNeeds) Update(_ context.Context, need *models.Need) error {
	if _, ok := m.rows[need.ID]; !ok {
		return apperrors.ErrNeedNotFound
	}
	m.rows[need.ID] = need
	return nil
}

func (m *memNeeds) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNeedNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memNeeds) IsReferenced(_ context.Context, id int64) (bool, error) {
	for pair := range m.db.memberships {
		if pair.needID == id {
			return true, nil
		}
	}
	for _, override := range m.db.overrides {
		if override.NeedID == id {
			return true, nil
		}
	}
	return false, nil
}

type memCategories struct {
	rows   map[int64]*models.Category
	nextID int64
	db     *memState
}

func (m *memCategories) GetByID(_ context.Context, id int64) (*models.Category, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return row, nil
}

func (m *memCategories) GetAll(_ context.Context) ([]*models.Category, error) {
	result := make([]*models.Category, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memCategories) Create(_ context.Context, category *models.Category) error {
	m.nextID++
	category.ID = m.nextID
	m.rows[category.ID] = category
	return nil
}

func (m *memCategories) Update(_ context.Context, category *models.Category) error {
	if _, ok := m.rows[category.ID]; !ok {
		return apperrors.ErrCategoryNotFound
	}
	m.rows[category.ID] = category
	return nil
}

func (m *memCategories) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrCategoryNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memCategories) IsReferenced(_ context.Context, id int64) (bool, error) {
	for pair := range m.db.memberships {
		if pair.categoryID == id {
			return true, nil
		}
	}
	for pair := range m.db.assignments {
		if pair.categoryID == id {
			return true, nil
		}
	}
	return false, nil
}

type membershipPair struct {
	categoryID int64
	needID     int64
}

type assignmentPair struct {
	pupilID    int64
	categoryID int64
}

// memState carries the join tables shared between stores
type memState struct {
	pupils      *memPupils
	forms       *memForms
	needs       *memNeeds
	categories  *memCategories
	memberships map[membershipPair]bool
	assignments map[assignmentPair]bool
	overrides   map[int64]*models.PupilNeedOverride
	overrideID  int64
}

type memMemberships struct {
	db *memState
}

func (m *memMemberships) ListNeeds(_ context.Context, categoryID int64) ([]*models.Need, error) {
	var result []*models.Need
	for pair := range m.db.memberships {
		if pair.categoryID == categoryID {
			result = append(result, m.db.needs.rows[pair.needID])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memMemberships) ListCategories(_ context.Context, needID int64) ([]*models.Category, error) {
	var result []*models.Category
	for pair := range m.db.memberships {
		if pair.needID == needID {
			result = append(result, m.db.categories.rows[pair.categoryID])
		}
	}
	return result, nil
}

func (m *memMemberships) Add(_ context.Context, categoryID, needID int64) error {
	pair := membershipPair{categoryID, needID}
	if m.db.memberships[pair] {
		return apperrors.ErrDuplicateMembership
	}
	m.db.memberships[pair] = true
	return nil
}

func (m *memMemberships) Remove(_ context.Context, categoryID, needID int64) error {
	pair := membershipPair{categoryID, needID}
	if !m.db.memberships[pair] {
		return apperrors.ErrMembershipNotFound
	}
	delete(m.db.memberships, pair)
	return nil
}

type memAssignments struct {
	db *memState
}

func (m *memAssignments) ListCategories(_ context.Context, pupilID int64) ([]*models.Category, error) {
	var result []*models.Category
	for pair := range m.db.assignments {
		if pair.pupilID == pupilID {
			result = append(result, m.db.categories.rows[pair.categoryID])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memAssignments) Assign(_ context.Context, pupilID, categoryID int64) error {
	pair := assignmentPair{pupilID, categoryID}
	if m.db.assignments[pair] {
		return apperrors.ErrDuplicateAssignment
	}
	m.db.assignments[pair] = true
	return nil
}

func (m *memAssignments) Remove(_ context.Context, pupilID, categoryID int64) error {
	pair := assignmentPair{pupilID, categoryID}
	if !m.db.assignments[pair] {
		return apperrors.ErrAssignmentNotFound
	}
	delete(m.db.assignments, pair)
	return nil
}

func (m *memAssignments) GrantedNeeds(_ context.Context, pupilID int64) ([]models.NeedGrant, error) {
	var result []models.NeedGrant
	for assignment := range m.db.assignments {
		if assignment.pupilID != pupilID {
			continue
		}
		category := m.db.categories.rows[assignment.categoryID]
		for membership := range m.db.memberships {
			if membership.categoryID == assignment.categoryID {
				result = append(result, models.NeedGrant{
					Need:         *m.db.needs.rows[membership.needID],
					CategoryName: category.Name,
				})
			}
		}
	}
	return result, nil
}

type memOverrides struct {
	db *memState
}

func (m *memOverrides) ListByPupil(_ context.Context, pupilID int64) ([]models.PupilNeedOverride, error) {
	var result []models.PupilNeedOverride
	for _, override := range m.db.overrides {
		if override.PupilID == pupilID {
			result = append(result, *override)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *memOverrides) AddedNeeds(_ context.Context, pupilID int64) ([]models.Need, error) {
	var result []models.Need
	for _, override := range m.db.overrides {
		if override.PupilID == pupilID && override.IsAdded {
			result = append(result, *m.db.needs.rows[override.NeedID])
		}
	}
	return result, nil
}

func (m *memOverrides) ExistsForPupilNeed(_ context.Context, pupilID, needID int64) (bool, error) {
	for _, override := range m.db.overrides {
		if override.PupilID == pupilID && override.NeedID == needID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memOverrides) Create(_ context.Context, override *models.PupilNeedOverride) error {
	m.db.overrideID++
	override.ID = m.db.overrideID
	stored := *override
	m.db.overrides[override.ID] = &stored
	return nil
}

func (m *memOverrides) Update(_ context.Context, override *models.PupilNeedOverride) error {
	row, ok := m.db.overrides[override.ID]
	if !ok {
		return apperrors.ErrOverrideNotFound
	}
	row.IsAdded = override.IsAdded
	row.Notes = override.Notes
	override.PupilID = row.PupilID
	override.NeedID = row.NeedID
	return nil
}

func (m *memOverrides) Delete(_ context.Context, overrideID int64) error {
	if _, ok := m.db.overrides[overrideID]; !ok {
		return apperrors.ErrOverrideNotFound
	}
	delete(m.db.overrides, overrideID)
	return nil
}

type deviceAssignmentKey struct {
	needID   int64
	deviceID int64
}

type memDeviceStore struct {
	rows        map[int64]*models.Device
	assignments map[deviceAssignmentKey]*models.NeedDeviceAssignment
	nextID      int64
}

func newMemDeviceStore() *memDeviceStore {
	return &memDeviceStore{
		rows:        make(map[int64]*models.Device),
		assignments: make(map[deviceAssignmentKey]*models.NeedDeviceAssignment),
	}
}

func (m *memDeviceStore) GetAll(_ context.Context, filter repositories.DeviceFilter) ([]*models.Device, error) {
	var result []*models.Device
	for _, device := range m.rows {
		if filter.Status != "" && device.Status != filter.Status {
			continue
		}
		if filter.CategoryID != 0 && (device.CategoryID == nil || *device.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.Unassigned && m.isAssigned(device.ID) {
			continue
		}
		result = append(result, device)
	}
	return result, nil
}

func (m *memDeviceStore) isAssigned(deviceID int64) bool {
	for key := range m.assignments {
		if key.deviceID == deviceID {
			return true
		}
	}
	return false
}

func (m *memDeviceStore) GetByID(_ context.Context, id int64) (*models.Device, error) {
	device, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrDeviceNotFound
	}
	return device, nil
}

func (m *memDeviceStore) Create(_ context.Context, device *models.Device) error {
	m.nextID++
	device.ID = m.nextID
	m.rows[device.ID] = device
	return nil
}

func (m *memDeviceStore) Update(_ context.Context, device *models.Device) error {
	if _, ok := m.rows[device.ID]; !ok {
		return apperrors.ErrDeviceNotFound
	}
	m.rows[device.ID] = device
	return nil
}

func (m *memDeviceStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrDeviceNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memDeviceStore) ListByNeed(_ context.Context, needID int64) ([]models.AssignedDevice, error) {
	return m.ListByNeedIDs(context.Background(), []int64{needID})
}

func (m *memDeviceStore) ListByNeedIDs(_ context.Context, needIDs []int64) ([]models.AssignedDevice, error) {
	var result []models.AssignedDevice
	for key, assignment := range m.assignments {
		for _, needID := range needIDs {
			if key.needID == needID {
				device := m.rows[key.deviceID]
				result = append(result, models.AssignedDevice{
					DeviceID:       device.ID,
					DeviceName:     device.Name,
					Model:          device.Model,
					SerialNumber:   device.SerialNumber,
					NeedID:         needID,
					AssignmentDate: assignment.AssignmentDate,
					Notes:          assignment.Notes,
				})
			}
		}
	}
	return result, nil
}

func (m *memDeviceStore) AssignToNeed(_ context.Context, assignment *models.NeedDeviceAssignment) error {
	key := deviceAssignmentKey{assignment.NeedID, assignment.DeviceID}
	if _, ok := m.assignments[key]; ok {
		return apperrors.ErrDuplicateDeviceAssignment
	}
	stored := *assignment
	m.assignments[key] = &stored
	return nil
}

func (m *memDeviceStore) RemoveFromNeed(_ context.Context, needID, deviceID int64) error {
	key := deviceAssignmentKey{needID, deviceID}
	if _, ok := m.assignments[key]; !ok {
		return apperrors.ErrDeviceAssignmentNotFound
	}
	delete(m.assignments, key)
	return nil
}

// newTestRouter wires the full route table over in-memory stores
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	state := &memState{
		pupils:      &memPupils{rows: make(map[int64]*models.Pupil)},
		forms:       &memForms{rows: map[int64]*models.Form{3: {ID: 3, Name: "7A", Year: 7}}},
		memberships: make(map[membershipPair]bool),
		assignments: make(map[assignmentPair]bool),
		overrides:   make(map[int64]*models.PupilNeedOverride),
	}
	state.needs = &memNeeds{rows: make(map[int64]*models.Need), db: state}
	state.categories = &memCategories{rows: make(map[int64]*models.Category), db: state}

	memberships := &memMemberships{db: state}
	assignments := &memAssignments{db: state}
	overrides := &memOverrides{db: state}
	devices := newMemDeviceStore()

	resolver := services.NewNeedsResolverService(assignments, overrides)
	pupilService := services.NewPupilService(state.pupils, state.forms)
	profileService := services.NewProfileService(state.pupils, state.forms, assignments, overrides, resolver, devices)
	overrideService := services.NewOverrideService(overrides, state.pupils, state.needs)
	assignmentService := services.NewPupilCategoryService(assignments, state.pupils, state.categories)
	needService := services.NewNeedService(state.needs, memberships)
	categoryService := services.NewCategoryService(state.categories)
	membershipService := services.NewCategoryNeedService(memberships, state.categories, state.needs)
	deviceService := services.NewDeviceService(devices, state.needs, state.categories)
	formService := services.NewFormService(state.forms)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewPupilController(pupilService, profileService, nil),
		controllers.NewPupilCategoryController(assignmentService, overrideService, resolver, pupilService),
		controllers.NewNeedController(needService, deviceService),
		controllers.NewCategoryController(categoryService, membershipService),
		controllers.NewDeviceController(deviceService),
		controllers.NewFormController(formService),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestRegisterFlow(t *testing.T) {
	router := newTestRouter(t)

	// Build the catalogue
	rec := doJSON(t, router, http.MethodPost, "/api/needs", gin.H{"name": "Extra time in exams"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var need models.Need
	decodeData(t, rec, &need)

	rec = doJSON(t, router, http.MethodPost, "/api/categories", gin.H{"category_name": "Dyslexia"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category models.Category
	decodeData(t, rec, &category)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/categories/%d/needs", category.ID), gin.H{"need_id": need.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Register a pupil and assign the category
	rec = doJSON(t, router, http.MethodPost, "/api/pupils", gin.H{"first_name": "Ada", "last_name": "Byrne", "form_id": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	var pupil models.Pupil
	decodeData(t, rec, &pupil)

	rec = doJSON(t, router, http.MethodPost, "/api/pupil-categories/assign-category",
		gin.H{"pupil_id": pupil.ID, "category_id": category.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The category's need flows into the effective set
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/pupil-categories/%d/effective-needs", pupil.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var effective []models.EffectiveNeed
	decodeData(t, rec, &effective)
	require.Len(t, effective, 1)
	assert.Equal(t, "Dyslexia", effective[0].Sources)

	// A removal override withdraws it again
	rec = doJSON(t, router, http.MethodPost, "/api/pupil-categories/need-override",
		gin.H{"pupil_id": pupil.ID, "need_id": need.ID, "is_added": false, "notes": "coping well"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var override models.PupilNeedOverride
	decodeData(t, rec, &override)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/pupil-categories/%d/effective-needs", pupil.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	effective = nil
	decodeData(t, rec, &effective)
	assert.Empty(t, effective)

	// Deleting the override restores the category-derived need
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/pupil-categories/need-override/%d", override.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/pupil-categories/%d/effective-needs", pupil.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	effective = nil
	decodeData(t, rec, &effective)
	require.Len(t, effective, 1)
	assert.Equal(t, need.ID, effective[0].NeedID)
	assert.Equal(t, "Dyslexia", effective[0].Sources)

	// The profile aggregates everything
	rec = doJSON(t, router, http.MethodGet, "/api/pupils/profile?name=ada", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		models.Pupil
		Categories     []models.Category          `json:"categories"`
		EffectiveNeeds []models.EffectiveNeed     `json:"effective_needs"`
		NeedOverrides  []models.PupilNeedOverride `json:"need_overrides"`
	}
	decodeData(t, rec, &profile)
	assert.Equal(t, "Byrne", profile.LastName)
	assert.Len(t, profile.Categories, 1)
	assert.Empty(t, profile.EffectiveNeeds)
	assert.Len(t, profile.NeedOverrides, 1)
}

func TestDuplicateAssignmentConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/categories", gin.H{"category_name": "ADHD"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category models.Category
	decodeData(t, rec, &category)

	rec = doJSON(t, router, http.MethodPost, "/api/pupils", gin.H{"first_name": "Tom", "last_name": "Okafor"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var pupil models.Pupil
	decodeData(t, rec, &pupil)

	body := gin.H{"pupil_id": pupil.ID, "category_id": category.ID}
	rec = doJSON(t, router, http.MethodPost, "/api/pupil-categories/assign-category", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/pupil-categories/assign-category", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteReferencedNeedConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/needs", gin.H{"name": "Radio aid"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var need models.Need
	decodeData(t, rec, &need)

	rec = doJSON(t, router, http.MethodPost, "/api/categories", gin.H{"category_name": "Hearing impairment"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category models.Category
	decodeData(t, rec, &category)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/categories/%d/needs", category.ID), gin.H{"need_id": need.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/needs/%d", need.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/categories/%d/needs/%d", category.ID, need.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/needs/%d", need.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUnknownPupilIs404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/pupils/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/pupil-categories/999/effective-needs", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidIDIs400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/pupils/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
