package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/middleware"
)

// PupilCategoryController handles category assignments, need overrides and
// the resolved effective-needs view for a pupil.
type PupilCategoryController struct {
	assignmentService *services.PupilCategoryService
	overrideService   *services.OverrideService
	resolverService   *services.NeedsResolverService
	pupilService      *services.PupilService
}

// NewPupilCategoryController creates a new PupilCategoryController
func NewPupilCategoryController(
	assignmentService *services.PupilCategoryService,
	overrideService *services.OverrideService,
	resolverService *services.NeedsResolverService,
	pupilService *services.PupilService,
) *PupilCategoryController {
	return &PupilCategoryController{
		assignmentService: assignmentService,
		overrideService:   overrideService,
		resolverService:   resolverService,
		pupilService:      pupilService,
	}
}

// GetEffectiveNeeds returns the resolved need set for a pupil
// @Summary Get effective needs
// @Description Resolves the needs in effect for a pupil from their category assignments and overrides
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param pupilId path int true "Pupil ID"
// @Success 200 {object} dto.APIResponse{data=[]models.EffectiveNeed} "Effective needs retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pupil ID"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/{pupilId}/effective-needs [get]
func (c *PupilCategoryController) GetEffectiveNeeds(ctx *gin.Context) {
	pupilID, ok := pathID(ctx, "pupilId", "pupil ID")
	if !ok {
		return
	}

	if _, err := c.pupilService.GetPupilByID(ctx, pupilID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	needs, err := c.resolverService.ResolveEffectiveNeeds(ctx, pupilID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      needs,
		Timestamp: time.Now(),
	})
}

// GetNeedOverrides lists a pupil's overrides
// @Summary List need overrides
// @Description Retrieves every override recorded for a pupil, newest first
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param pupilId path int true "Pupil ID"
// @Success 200 {object} dto.APIResponse{data=[]models.PupilNeedOverride} "Overrides retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pupil ID"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/{pupilId}/need-overrides [get]
func (c *PupilCategoryController) GetNeedOverrides(ctx *gin.Context) {
	pupilID, ok := pathID(ctx, "pupilId", "pupil ID")
	if !ok {
		return
	}

	overrides, err := c.overrideService.ListOverrides(ctx, pupilID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      overrides,
		Timestamp: time.Now(),
	})
}

// CreateNeedOverride records a new override
// @Summary Create need override
// @Description Adds or removes a single need for a pupil regardless of their categories
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param request body dto.CreateOverrideRequest true "Override information"
// @Success 201 {object} dto.APIResponse{data=models.PupilNeedOverride} "Override created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Pupil or need not found"
// @Failure 409 {object} dto.ErrorResponse "Override already exists for this pupil and need"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/need-override [post]
func (c *PupilCategoryController) CreateNeedOverride(ctx *gin.Context) {
	var req dto.CreateOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid override data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	override, err := c.overrideService.AddOverride(ctx, req.PupilID, req.NeedID, *req.IsAdded, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      override,
		Timestamp: time.Now(),
	})
}

// UpdateNeedOverride mutates an existing override
// @Summary Update need override
// @Description Changes the direction or notes of an existing override
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param overrideId path int true "Override ID"
// @Param request body dto.UpdateOverrideRequest true "Updated override information"
// @Success 200 {object} dto.APIResponse{data=models.PupilNeedOverride} "Override updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Override not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/need-override/{overrideId} [put]
func (c *PupilCategoryController) UpdateNeedOverride(ctx *gin.Context) {
	overrideID, ok := pathID(ctx, "overrideId", "override ID")
	if !ok {
		return
	}

	var req dto.UpdateOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid override data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	override, err := c.overrideService.UpdateOverride(ctx, overrideID, *req.IsAdded, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      override,
		Timestamp: time.Now(),
	})
}

// DeleteNeedOverride removes an override
// @Summary Delete need override
// @Description Removes an override so category-derived needs apply again
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param overrideId path int true "Override ID"
// @Success 204 "Override deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid override ID"
// @Failure 404 {object} dto.ErrorResponse "Override not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/need-override/{overrideId} [delete]
func (c *PupilCategoryController) DeleteNeedOverride(ctx *gin.Context) {
	overrideID, ok := pathID(ctx, "overrideId", "override ID")
	if !ok {
		return
	}

	if err := c.overrideService.RemoveOverride(ctx, overrideID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetPupilCategories lists the categories assigned to a pupil
// @Summary List pupil categories
// @Description Retrieves every category assigned to a pupil
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param pupilId path int true "Pupil ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pupil ID"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/{pupilId}/categories [get]
func (c *PupilCategoryController) GetPupilCategories(ctx *gin.Context) {
	pupilID, ok := pathID(ctx, "pupilId", "pupil ID")
	if !ok {
		return
	}

	categories, err := c.assignmentService.ListCategories(ctx, pupilID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// AssignCategory assigns a category to a pupil
// @Summary Assign category
// @Description Assigns a category to a pupil so its needs flow into their effective set
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param request body dto.AssignCategoryRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Category assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Pupil or category not found"
// @Failure 409 {object} dto.ErrorResponse "Category already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/assign-category [post]
func (c *PupilCategoryController) AssignCategory(ctx *gin.Context) {
	var req dto.AssignCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.assignmentService.AssignCategory(ctx, req.PupilID, req.CategoryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Category assigned to pupil"},
		Timestamp: time.Now(),
	})
}

// RemoveCategory removes a category assignment from a pupil
// @Summary Remove category assignment
// @Description Removes a category from a pupil, withdrawing its derived needs
// @Tags pupil-categories
// @Accept json
// @Produce json
// @Param pupilId path int true "Pupil ID"
// @Param categoryId path int true "Category ID"
// @Success 204 "Assignment removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupil-categories/{pupilId}/categories/{categoryId} [delete]
func (c *PupilCategoryController) RemoveCategory(ctx *gin.Context) {
	pupilID, ok := pathID(ctx, "pupilId", "pupil ID")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId", "category ID")
	if !ok {
		return
	}

	if err := c.assignmentService.RemoveCategory(ctx, pupilID, categoryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
