package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/middleware"
)

// FormController exposes the read-only form group list
type FormController struct {
	formService *services.FormService
}

// NewFormController creates a new FormController
func NewFormController(formService *services.FormService) *FormController {
	return &FormController{formService: formService}
}

// GetAllForms retrieves all form groups
// @Summary Get all forms
// @Description Retrieves every form group
// @Tags forms
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Form} "Forms retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forms [get]
func (c *FormController) GetAllForms(ctx *gin.Context) {
	forms, err := c.formService.GetAllForms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      forms,
		Timestamp: time.Now(),
	})
}

// GetFormByID retrieves a form group by ID
// @Summary Get form by ID
// @Description Retrieves a specific form group by its ID
// @Tags forms
// @Accept json
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {object} dto.APIResponse{data=models.Form} "Form retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid form ID"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forms/{id} [get]
func (c *FormController) GetFormByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "form ID")
	if !ok {
		return
	}

	form, err := c.formService.GetFormByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      form,
		Timestamp: time.Now(),
	})
}
