package dto

// CreateOverrideRequest is the body for creating a need override. IsAdded is a
// pointer so that an explicit false survives required-field validation.
type CreateOverrideRequest struct {
	PupilID int64  `json:"pupil_id" binding:"required"`
	NeedID  int64  `json:"need_id" binding:"required"`
	IsAdded *bool  `json:"is_added" binding:"required"`
	Notes   string `json:"notes"`
}

// UpdateOverrideRequest is the body for mutating an existing override
type UpdateOverrideRequest struct {
	IsAdded *bool  `json:"is_added" binding:"required"`
	Notes   string `json:"notes"`
}

// AssignCategoryRequest is the body for assigning a category to a pupil
type AssignCategoryRequest struct {
	PupilID    int64 `json:"pupil_id" binding:"required"`
	CategoryID int64 `json:"category_id" binding:"required"`
}
