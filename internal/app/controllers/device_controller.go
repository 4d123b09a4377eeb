package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/app/repositories"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/middleware"
)

// DeviceController handles device inventory operations
type DeviceController struct {
	deviceService *services.DeviceService
}

// NewDeviceController creates a new DeviceController
func NewDeviceController(deviceService *services.DeviceService) *DeviceController {
	return &DeviceController{deviceService: deviceService}
}

// GetAllDevices retrieves devices, optionally filtered
// @Summary Get all devices
// @Description Retrieves the device inventory, optionally filtered by status or category
// @Tags devices
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param category_id query int false "Filter by category ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Device} "Devices retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices [get]
func (c *DeviceController) GetAllDevices(ctx *gin.Context) {
	filter := repositories.DeviceFilter{Status: ctx.Query("status")}
	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID")
			errorDetail = errorDetail.WithDetails("category_id must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.CategoryID = categoryID
	}

	devices, err := c.deviceService.GetDevices(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      devices,
		Timestamp: time.Now(),
	})
}

// GetUnassignedDevices retrieves devices with no need assignment
// @Summary Get unassigned devices
// @Description Retrieves devices not currently loaned against any need
// @Tags devices
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Device} "Devices retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices/unassigned [get]
func (c *DeviceController) GetUnassignedDevices(ctx *gin.Context) {
	devices, err := c.deviceService.GetUnassignedDevices(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      devices,
		Timestamp: time.Now(),
	})
}

// GetDeviceByID retrieves a device by ID
// @Summary Get device by ID
// @Description Retrieves a specific device by its ID
// @Tags devices
// @Accept json
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {object} dto.APIResponse{data=models.Device} "Device retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid device ID"
// @Failure 404 {object} dto.ErrorResponse "Device not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices/{id} [get]
func (c *DeviceController) GetDeviceByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "device ID")
	if !ok {
		return
	}

	device, err := c.deviceService.GetDeviceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      device,
		Timestamp: time.Now(),
	})
}

// CreateDevice adds a device to the inventory
// @Summary Create a new device
// @Description Adds a device to the inventory
// @Tags devices
// @Accept json
// @Produce json
// @Param request body dto.CreateDeviceRequest true "Device information"
// @Success 201 {object} dto.APIResponse{data=models.Device} "Device created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices [post]
func (c *DeviceController) CreateDevice(ctx *gin.Context) {
	var req dto.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid device data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	device := &models.Device{
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		PurchaseDate: req.PurchaseDate,
		WarrantyInfo: req.WarrantyInfo,
		Status:       req.Status,
		Notes:        req.Notes,
		CategoryID:   req.CategoryID,
	}
	if err := c.deviceService.CreateDevice(ctx, device); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      device,
		Timestamp: time.Now(),
	})
}

// UpdateDevice updates a device
// @Summary Update a device
// @Description Replaces the fields of a device
// @Tags devices
// @Accept json
// @Produce json
// @Param id path int true "Device ID"
// @Param request body dto.UpdateDeviceRequest true "Updated device information"
// @Success 200 {object} dto.APIResponse{data=models.Device} "Device updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Device not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices/{id} [put]
func (c *DeviceController) UpdateDevice(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "device ID")
	if !ok {
		return
	}

	var req dto.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid device data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	device := &models.Device{
		ID:           id,
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		PurchaseDate: req.PurchaseDate,
		WarrantyInfo: req.WarrantyInfo,
		Status:       req.Status,
		Notes:        req.Notes,
		CategoryID:   req.CategoryID,
	}
	if err := c.deviceService.UpdateDevice(ctx, device); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      device,
		Timestamp: time.Now(),
	})
}

// DeleteDevice deletes a device
// @Summary Delete a device
// @Description Removes a device and any need assignments it had
// @Tags devices
// @Accept json
// @Produce json
// @Param id path int true "Device ID"
// @Success 204 "Device deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid device ID"
// @Failure 404 {object} dto.ErrorResponse "Device not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /devices/{id} [delete]
func (c *DeviceController) DeleteDevice(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "device ID")
	if !ok {
		return
	}

	if err := c.deviceService.DeleteDevice(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
