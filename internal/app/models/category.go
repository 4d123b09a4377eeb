package models

// Category represents a named grouping of needs, assignable to pupils
type Category struct {
	ID          int64  `json:"category_id"`
	Name        string `json:"category_name"`
	Description string `json:"description"`
}
