package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/pkg/apperrors"
)

type fakeNeedStore struct {
	needs      map[int64]*models.Need
	referenced map[int64]bool
	nextID     int64
}

func newFakeNeedStore() *fakeNeedStore {
	return &fakeNeedStore{
		needs:      make(map[int64]*models.Need),
		referenced: make(map[int64]bool),
	}
}

func (f *fakeNeedStore) GetByID(_ context.Context, id int64) (*models.Need, error) {
	need, ok := f.needs[id]
	if !ok {
		return nil, apperrors.ErrNeedNotFound
	}
	return need, nil
}

func (f *fakeNeedStore) GetAll(_ context.Context) ([]*models.Need, error) {
	result := make([]*models.Need, 0, len(f.needs))
	for _, need := range f.needs {
		result = append(result, need)
	}
	return result, nil
}

func (f *fakeNeedStore) Create(_ context.Context, need *models.Need) error {
	f.nextID++
	need.ID = f.nextID
	f.needs[need.ID] = need
	return nil
}

func (f *fakeNeedStore) Update(_ context.Context, need *models.Need) error {
	if _, ok := f.needs[need.ID]; !ok {
		return apperrors.ErrNeedNotFound
	}
	f.needs[need.ID] = need
	return nil
}

func (f *fakeNeedStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.needs[id]; !ok {
		return apperrors.ErrNeedNotFound
	}
	delete(f.needs, id)
	return nil
}

func (f *fakeNeedStore) IsReferenced(_ context.Context, id int64) (bool, error) {
	return f.referenced[id], nil
}

type fakeNeedCategoryLister struct {
	byNeed map[int64][]*models.Category
}

func (f *fakeNeedCategoryLister) ListCategories(_ context.Context, needID int64) ([]*models.Category, error) {
	return f.byNeed[needID], nil
}

func TestCreateNeedRequiresName(t *testing.T) {
	svc := NewNeedService(newFakeNeedStore(), &fakeNeedCategoryLister{})

	err := svc.CreateNeed(context.Background(), &models.Need{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteNeedRejectedWhileReferenced(t *testing.T) {
	store := newFakeNeedStore()
	svc := NewNeedService(store, &fakeNeedCategoryLister{})
	ctx := context.Background()

	need := &models.Need{Name: "Extra time in exams"}
	require.NoError(t, svc.CreateNeed(ctx, need))
	store.referenced[need.ID] = true

	err := svc.DeleteNeed(ctx, need.ID)
	assert.ErrorIs(t, err, apperrors.ErrNeedHasRelations)
	assert.Contains(t, store.needs, need.ID)

	store.referenced[need.ID] = false
	require.NoError(t, svc.DeleteNeed(ctx, need.ID))
	assert.NotContains(t, store.needs, need.ID)
}

func TestDeleteNeedUnknown(t *testing.T) {
	svc := NewNeedService(newFakeNeedStore(), &fakeNeedCategoryLister{})

	err := svc.DeleteNeed(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNeedNotFound)
}

func TestGetNeedCategories(t *testing.T) {
	store := newFakeNeedStore()
	lister := &fakeNeedCategoryLister{byNeed: map[int64][]*models.Category{
		1: {{ID: 5, Name: "Dyslexia"}},
	}}
	svc := NewNeedService(store, lister)
	ctx := context.Background()

	require.NoError(t, svc.CreateNeed(ctx, &models.Need{Name: "Extra time in exams"}))

	categories, err := svc.GetNeedCategories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Dyslexia", categories[0].Name)

	_, err = svc.GetNeedCategories(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNeedNotFound)
}
