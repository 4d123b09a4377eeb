package dto

// CreateNeedRequest is the body for creating a need
type CreateNeedRequest struct {
	Name             string `json:"name" binding:"required"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

// UpdateNeedRequest is the body for updating a need
type UpdateNeedRequest struct {
	Name             string `json:"name" binding:"required"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

// CreateCategoryRequest is the body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"category_name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the body for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"category_name" binding:"required"`
	Description string `json:"description"`
}

// AddNeedToCategoryRequest is the body for adding a need to a category
type AddNeedToCategoryRequest struct {
	NeedID int64 `json:"need_id" binding:"required"`
}
