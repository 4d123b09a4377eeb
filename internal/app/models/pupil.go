package models

// Pupil represents a pupil on the register. FormID is nil while the pupil has
// not been placed in a form yet.
type Pupil struct {
	ID        int64  `json:"pupil_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FormID    *int64 `json:"form_id"`
	Notes     string `json:"notes"`
	Form      *Form  `json:"form,omitempty"`
}
