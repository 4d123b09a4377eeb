package models

import "time"

// PupilNeedOverride is a per-pupil, per-need exception. IsAdded true grants
// the need regardless of category membership; false withholds it even when a
// category would grant it.
type PupilNeedOverride struct {
	ID        int64     `json:"override_id"`
	PupilID   int64     `json:"pupil_id"`
	NeedID    int64     `json:"need_id"`
	IsAdded   bool      `json:"is_added"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	NeedName  string    `json:"need_name,omitempty"`
}
