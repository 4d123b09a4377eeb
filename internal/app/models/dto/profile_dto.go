package dto

import "github.com/oakmere/senreg/internal/app/models"

// PupilProfile is the composite read model for the profile page: the pupil,
// their form, assigned categories, resolved effective needs, raw overrides and
// devices loaned against any effective need.
type PupilProfile struct {
	models.Pupil
	Categories     []models.Category          `json:"categories"`
	EffectiveNeeds []models.EffectiveNeed     `json:"effective_needs"`
	NeedOverrides  []models.PupilNeedOverride `json:"need_overrides"`
	Devices        []models.AssignedDevice    `json:"devices"`
}
