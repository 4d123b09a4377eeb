package services

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type fakePupilStore struct {
	pupils map[int64]*models.Pupil
	nextID int64
}

func newFakePupilStore() *fakePupilStore {
	return &fakePupilStore{pupils: make(map[int64]*models.Pupil)}
}

func (f *fakePupilStore) GetByID(_ context.Context, id int64) (*models.Pupil, error) {
	pupil, ok := f.pupils[id]
	if !ok {
		return nil, apperrors.ErrPupilNotFound
	}
	copied := *pupil
	return &copied, nil
}

func (f *fakePupilStore) GetAll(_ context.Context) ([]*models.Pupil, error) {
	result := make([]*models.Pupil, 0, len(f.pupils))
	for _, pupil := range f.pupils {
		result = append(result, pupil)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (f *fakePupilStore) SearchByName(_ context.Context, fragment string) ([]*models.Pupil, error) {
	needle := strings.ToLower(fragment)
	var result []*models.Pupil
	for _, pupil := range f.pupils {
		full := strings.ToLower(pupil.FirstName + " " + pupil.LastName)
		if strings.Contains(full, needle) {
			result = append(result, pupil)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (f *fakePupilStore) Create(_ context.Context, pupil *models.Pupil) error {
	f.nextID++
	pupil.ID = f.nextID
	stored := *pupil
	f.pupils[pupil.ID] = &stored
	return nil
}

func (f *fakePupilStore) Update(_ context.Context, pupil *models.Pupil) error {
	if _, ok := f.pupils[pupil.ID]; !ok {
		return apperrors.ErrPupilNotFound
	}
	stored := *pupil
	f.pupils[pupil.ID] = &stored
	return nil
}

func (f *fakePupilStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.pupils[id]; !ok {
		return apperrors.ErrPupilNotFound
	}
	delete(f.pupils, id)
	return nil
}

type fakeFormGetter struct {
	forms map[int64]*models.Form
}

func (f *fakeFormGetter) GetByID(_ context.Context, id int64) (*models.Form, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, apperrors.ErrFormNotFound
	}
	return form, nil
}

func pupilServiceFixture() (*PupilService, *fakePupilStore) {
	store := newFakePupilStore()
	forms := &fakeFormGetter{forms: map[int64]*models.Form{
		3: {ID: 3, Name: "7A", Year: 7},
	}}
	return NewPupilService(store, forms), store
}

func TestCreatePupilValidation(t *testing.T) {
	svc, _ := pupilServiceFixture()
	ctx := context.Background()

	err := svc.CreatePupil(ctx, &models.Pupil{FirstName: "  ", LastName: "Byrne"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.CreatePupil(ctx, &models.Pupil{FirstName: "Ada", LastName: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreatePupilUnknownForm(t *testing.T) {
	svc, _ := pupilServiceFixture()

	formID := int64(99)
	err := svc.CreatePupil(context.Background(), &models.Pupil{
		FirstName: "Ada", LastName: "Byrne", FormID: &formID,
	})
	assert.ErrorIs(t, err, apperrors.ErrFormNotFound)
}

func TestImportCSV(t *testing.T) {
	svc, store := pupilServiceFixture()

	csv := strings.Join([]string{
		"first_name,last_name,form_id,notes",
		"Ada,Byrne,3,needs front row seating",
		"Tom,Okafor,,",
	}, "\n")

	imported, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	require.Len(t, store.pupils, 2)

	pupils, err := svc.GetAllPupils(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pupils[0].FormID)
	assert.Equal(t, int64(3), *pupils[0].FormID)
	assert.Nil(t, pupils[1].FormID)
}

func TestImportCSVMissingHeader(t *testing.T) {
	svc, _ := pupilServiceFixture()

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("first_name,notes\nAda,hello"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSVImport)
}

func TestImportCSVStopsAtBadRow(t *testing.T) {
	svc, store := pupilServiceFixture()

	csv := strings.Join([]string{
		"first_name,last_name,form_id,notes",
		"Ada,Byrne,3,",
		"Tom,Okafor,not-a-number,",
		"Never,Reached,,",
	}, "\n")

	imported, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSVImport)

	// Rows before the failure stay committed
	assert.Equal(t, 1, imported)
	assert.Len(t, store.pupils, 1)
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc, _ := pupilServiceFixture()

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSVImport)
}
