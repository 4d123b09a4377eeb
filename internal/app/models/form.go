package models

// Form represents a homeroom/class group pupils belong to
type Form struct {
	ID          int64  `json:"form_id"`
	Name        string `json:"form_name"`
	Year        int    `json:"form_year"`
	TeacherName string `json:"teacher_name"`
}
