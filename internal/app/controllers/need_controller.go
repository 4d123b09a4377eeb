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

// NeedController handles need catalogue operations
type NeedController struct {
	needService   *services.NeedService
	deviceService *services.DeviceService
}

// NewNeedController creates a new NeedController
func NewNeedController(needService *services.NeedService, deviceService *services.DeviceService) *NeedController {
	return &NeedController{
		needService:   needService,
		deviceService: deviceService,
	}
}

// GetAllNeeds retrieves the need catalogue
// @Summary Get all needs
// @Description Retrieves the need catalogue ordered by name
// @Tags needs
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Need} "Needs retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs [get]
func (c *NeedController) GetAllNeeds(ctx *gin.Context) {
	needs, err := c.needService.GetAllNeeds(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      needs,
		Timestamp: time.Now(),
	})
}

// GetNeedByID retrieves a need by ID
// @Summary Get need by ID
// @Description Retrieves a specific need by its ID
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Success 200 {object} dto.APIResponse{data=models.Need} "Need retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid need ID"
// @Failure 404 {object} dto.ErrorResponse "Need not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id} [get]
func (c *NeedController) GetNeedByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	need, err := c.needService.GetNeedByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      need,
		Timestamp: time.Now(),
	})
}

// CreateNeed creates a need
// @Summary Create a new need
// @Description Adds a need to the catalogue
// @Tags needs
// @Accept json
// @Produce json
// @Param request body dto.CreateNeedRequest true "Need information"
// @Success 201 {object} dto.APIResponse{data=models.Need} "Need created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs [post]
func (c *NeedController) CreateNeed(ctx *gin.Context) {
	var req dto.CreateNeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid need data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	need := &models.Need{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
	}
	if err := c.needService.CreateNeed(ctx, need); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      need,
		Timestamp: time.Now(),
	})
}

// UpdateNeed updates a need
// @Summary Update a need
// @Description Replaces the fields of a catalogue entry
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Param request body dto.UpdateNeedRequest true "Updated need information"
// @Success 200 {object} dto.APIResponse{data=models.Need} "Need updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Need not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id} [put]
func (c *NeedController) UpdateNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	var req dto.UpdateNeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid need data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	need := &models.Need{
		ID:               id,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
	}
	if err := c.needService.UpdateNeed(ctx, need); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      need,
		Timestamp: time.Now(),
	})
}

// DeleteNeed deletes a need
// @Summary Delete a need
// @Description Deletes a need unless a category, override or device still references it
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Success 204 "Need deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid need ID"
// @Failure 404 {object} dto.ErrorResponse "Need not found"
// @Failure 409 {object} dto.ErrorResponse "Need is still referenced"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id} [delete]
func (c *NeedController) DeleteNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	if err := c.needService.DeleteNeed(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetNeedCategories lists the categories containing a need
// @Summary List categories of a need
// @Description Retrieves the categories that imply this need
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid need ID"
// @Failure 404 {object} dto.ErrorResponse "Need not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id}/categories [get]
func (c *NeedController) GetNeedCategories(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	categories, err := c.needService.GetNeedCategories(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// GetNeedDevices lists devices assigned to a need
// @Summary List devices for a need
// @Description Retrieves devices currently loaned against a need
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AssignedDevice} "Devices retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid need ID"
// @Failure 404 {object} dto.ErrorResponse "Need not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id}/devices [get]
func (c *NeedController) GetNeedDevices(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	devices, err := c.deviceService.GetDevicesForNeed(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      devices,
		Timestamp: time.Now(),
	})
}

// AssignDeviceToNeed assigns a device to a need
// @Summary Assign device to need
// @Description Records a device loan against a need
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Param request body dto.AssignDeviceRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.NeedDeviceAssignment} "Device assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Need or device not found"
// @Failure 409 {object} dto.ErrorResponse "Device already assigned to this need"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id}/devices [post]
func (c *NeedController) AssignDeviceToNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}

	var req dto.AssignDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment := &models.NeedDeviceAssignment{
		NeedID:         id,
		DeviceID:       req.DeviceID,
		AssignmentDate: req.AssignmentDate,
		Notes:          req.Notes,
	}
	if err := c.deviceService.AssignDeviceToNeed(ctx, assignment); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      assignment,
		Timestamp: time.Now(),
	})
}

// RemoveDeviceFromNeed removes a device assignment
// @Summary Remove device from need
// @Description Ends a device loan against a need
// @Tags needs
// @Accept json
// @Produce json
// @Param id path int true "Need ID"
// @Param deviceId path int true "Device ID"
// @Success 204 "Assignment removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /needs/{id}/devices/{deviceId} [delete]
func (c *NeedController) RemoveDeviceFromNeed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "need ID")
	if !ok {
		return
	}
	deviceID, ok := pathID(ctx, "deviceId", "device ID")
	if !ok {
		return
	}

	if err := c.deviceService.RemoveDeviceFromNeed(ctx, id, deviceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
