package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	PupilRepository         *PupilRepository
	FormRepository          *FormRepository
	NeedRepository          *NeedRepository
	CategoryRepository      *CategoryRepository
	CategoryNeedRepository  *CategoryNeedRepository
	PupilCategoryRepository *PupilCategoryRepository
	NeedOverrideRepository  *NeedOverrideRepository
	DeviceRepository        *DeviceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		PupilRepository:         NewPupilRepository(db),
		FormRepository:          NewFormRepository(db),
		NeedRepository:          NewNeedRepository(db),
		CategoryRepository:      NewCategoryRepository(db),
		CategoryNeedRepository:  NewCategoryNeedRepository(db),
		PupilCategoryRepository: NewPupilCategoryRepository(db),
		NeedOverrideRepository:  NewNeedOverrideRepository(db),
		DeviceRepository:        NewDeviceRepository(db),
	}
}
