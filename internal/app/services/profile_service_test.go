package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type fakeDeviceLister struct {
	byNeed map[int64][]models.AssignedDevice
}

func (f *fakeDeviceLister) ListByNeedIDs(_ context.Context, needIDs []int64) ([]models.AssignedDevice, error) {
	var result []models.AssignedDevice
	for _, id := range needIDs {
		result = append(result, f.byNeed[id]...)
	}
	return result, nil
}

func profileServiceFixture() (*ProfileService, *fakePupilStore) {
	pupils := newFakePupilStore()
	formID := int64(3)
	pupils.Create(context.Background(), &models.Pupil{FirstName: "Ada", LastName: "Byrne", FormID: &formID})
	pupils.Create(context.Background(), &models.Pupil{FirstName: "Adam", LastName: "Adeyemi"})

	forms := &fakeFormGetter{forms: map[int64]*models.Form{
		3: {ID: 3, Name: "7A", Year: 7},
	}}

	grants := &fakeGrantSource{grants: map[int64][]models.NeedGrant{
		1: {grant(10, "Extra time in exams", "Dyslexia")},
	}}
	overrides := &fakeOverrideSource{
		overrides: map[int64][]models.PupilNeedOverride{
			1: {{ID: 7, PupilID: 1, NeedID: 30, IsAdded: true, NeedName: "Radio aid"}},
		},
		added: map[int64][]models.Need{
			1: {{ID: 30, Name: "Radio aid"}},
		},
	}

	assignments := &fakeAssignmentStore{
		assigned:   map[assignmentKey]bool{{1, 5}: true},
		categories: map[int64]*models.Category{5: {ID: 5, Name: "Dyslexia"}},
	}

	devices := &fakeDeviceLister{byNeed: map[int64][]models.AssignedDevice{
		30: {{DeviceID: 4, DeviceName: "Radio aid receiver", NeedID: 30, NeedName: "Radio aid"}},
	}}

	resolver := NewNeedsResolverService(grants, overrides)
	return NewProfileService(pupils, forms, assignments, overrides, resolver, devices), pupils
}

func TestGetProfileByID(t *testing.T) {
	svc, _ := profileServiceFixture()

	profile, err := svc.GetProfileByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.FirstName)
	require.NotNil(t, profile.Form)
	assert.Equal(t, "7A", profile.Form.Name)

	require.Len(t, profile.Categories, 1)
	assert.Equal(t, "Dyslexia", profile.Categories[0].Name)

	require.Len(t, profile.EffectiveNeeds, 2)
	assert.Equal(t, "Extra time in exams", profile.EffectiveNeeds[0].Name)
	assert.Equal(t, "Dyslexia", profile.EffectiveNeeds[0].Sources)
	assert.Equal(t, models.IndividualAssignmentSource, profile.EffectiveNeeds[1].Sources)

	require.Len(t, profile.NeedOverrides, 1)
	require.Len(t, profile.Devices, 1)
	assert.Equal(t, "Radio aid receiver", profile.Devices[0].DeviceName)
}

func TestGetProfileFormlessPupil(t *testing.T) {
	svc, _ := profileServiceFixture()

	// Pupil 2 has no form; the profile carries a null form rather than an error
	profile, err := svc.GetProfileByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, profile.Form)
	assert.Nil(t, profile.FormID)
}

func TestGetProfileByIDUnknownPupil(t *testing.T) {
	svc, _ := profileServiceFixture()

	_, err := svc.GetProfileByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrPupilNotFound)
}

func TestGetProfileByName(t *testing.T) {
	svc, _ := profileServiceFixture()

	// Both Ada Byrne and Adam Adeyemi match "ada"; last name order picks Adeyemi
	profile, err := svc.GetProfileByName(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "Adeyemi", profile.LastName)
}

func TestGetProfileByNameNoMatch(t *testing.T) {
	svc, _ := profileServiceFixture()

	_, err := svc.GetProfileByName(context.Background(), "zzz")
	assert.ErrorIs(t, err, apperrors.ErrPupilNotFound)

	_, err = svc.GetProfileByName(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, store := profileServiceFixture()
	ctx := context.Background()

	notes := "moved to front row"
	profile, err := svc.UpdateProfile(ctx, 1, &dto.UpdatePupilRequest{Notes: &notes})
	require.NoError(t, err)

	// Untouched fields keep their values
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, notes, profile.Notes)
	require.NotNil(t, store.pupils[1].FormID)
	assert.Equal(t, int64(3), *store.pupils[1].FormID)
}

func TestUpdateProfileExplicitNullForm(t *testing.T) {
	svc, store := profileServiceFixture()

	// form_id present in the body but null detaches the form
	profile, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdatePupilRequest{
		FormID:    nil,
		FormIDSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, profile.FormID)
	assert.Nil(t, profile.Form)
	assert.Nil(t, store.pupils[1].FormID)
}

func TestUpdateProfileUnknownForm(t *testing.T) {
	svc, _ := profileServiceFixture()

	formID := int64(99)
	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdatePupilRequest{
		FormID:    &formID,
		FormIDSet: true,
	})
	assert.ErrorIs(t, err, apperrors.ErrFormNotFound)
}

func TestUpdateProfileEmptyNameRejected(t *testing.T) {
	svc, _ := profileServiceFixture()

	empty := ""
	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdatePupilRequest{FirstName: &empty})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
