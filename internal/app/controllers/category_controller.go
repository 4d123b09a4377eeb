package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/middleware"
)

// CategoryController handles category catalogue and membership operations
type CategoryController struct {
	categoryService   *services.CategoryService
	membershipService *services.CategoryNeedService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, membershipService *services.CategoryNeedService) *CategoryController {
	return &CategoryController{
		categoryService:   categoryService,
		membershipService: membershipService,
	}
}

// GetAllCategories retrieves the category catalogue
// @Summary Get all categories
// @Description Retrieves the category catalogue ordered by name
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// GetCategoryByID retrieves a category by ID
// @Summary Get category by ID
// @Description Retrieves a specific category by its ID
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// CreateCategory creates a category
// @Summary Create a new category
// @Description Adds a category to the catalogue
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := c.categoryService.CreateCategory(ctx, category); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// UpdateCategory updates a category
// @Summary Update a category
// @Description Replaces the fields of a catalogue entry
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Updated category information"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category := &models.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := c.categoryService.UpdateCategory(ctx, category); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// DeleteCategory deletes a category
// @Summary Delete a category
// @Description Deletes a category unless a need membership or pupil assignment still references it
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 204 "Category deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 409 {object} dto.ErrorResponse "Category is still referenced"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetCategoryNeeds lists the needs a category implies
// @Summary List needs of a category
// @Description Retrieves the needs granted by this category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Need} "Needs retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id}/needs [get]
func (c *CategoryController) GetCategoryNeeds(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}

	needs, err := c.membershipService.ListNeeds(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      needs,
		Timestamp: time.Now(),
	})
}

// AddNeedToCategory puts a need into a category
// @Summary Add need to category
// @Description Makes a need part of this category's derived set
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.AddNeedToCategoryRequest true "Need to add"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Need added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Category or need not found"
// @Failure 409 {object} dto.ErrorResponse "Need already in this category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id}/needs [post]
func (c *CategoryController) AddNeedToCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}

	var req dto.AddNeedToCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid membership data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.membershipService.AddNeed(ctx, id, req.NeedID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Need added to category"},
		Timestamp: time.Now(),
	})
}

// RemoveNeedFromCategory takes a need out of a category
// @Summary Remove need from category
// @Description Removes a need from this category's derived set
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param needId path int true "Need ID"
// @Success 204 "Need removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id}/needs/{needId} [delete]
func (c *CategoryController) RemoveNeedFromCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "category ID")
	if !ok {
		return
	}
	needID, ok := pathID(ctx, "needId", "need ID")
	if !ok {
		return
	}

	if err := c.membershipService.RemoveNeed(ctx, id, needID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
