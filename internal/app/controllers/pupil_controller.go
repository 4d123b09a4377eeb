package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/models"
	"github.com/oakmere/senreg/internal/app/models/dto"
	"github.com/oakmere/senreg/internal/app/services"
	"github.com/oakmere/senreg/internal/middleware"
	"github.com/oakmere/senreg/internal/pkg/filestorage"
	"github.com/oakmere/senreg/internal/pkg/logger"
)

// PupilController handles pupil-related operations
type PupilController struct {
	pupilService   *services.PupilService
	profileService *services.ProfileService
	storage        *filestorage.LocalStorage
}

// NewPupilController creates a new PupilController
func NewPupilController(pupilService *services.PupilService, profileService *services.ProfileService, storage *filestorage.LocalStorage) *PupilController {
	return &PupilController{
		pupilService:   pupilService,
		profileService: profileService,
		storage:        storage,
	}
}

// GetAllPupils retrieves all pupils
// @Summary Get all pupils
// @Description Retrieves the register ordered by last name, first name
// @Tags pupils
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Pupil} "Pupils retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils [get]
func (c *PupilController) GetAllPupils(ctx *gin.Context) {
	pupils, err := c.pupilService.GetAllPupils(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pupils,
		Timestamp: time.Now(),
	})
}

// GetPupilByID retrieves a pupil by ID
// @Summary Get pupil by ID
// @Description Retrieves a specific pupil by their ID
// @Tags pupils
// @Accept json
// @Produce json
// @Param id path int true "Pupil ID"
// @Success 200 {object} dto.APIResponse{data=models.Pupil} "Pupil retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pupil ID"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/{id} [get]
func (c *PupilController) GetPupilByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "pupil ID")
	if !ok {
		return
	}

	pupil, err := c.pupilService.GetPupilByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pupil,
		Timestamp: time.Now(),
	})
}

// CreatePupil handles pupil creation
// @Summary Create a new pupil
// @Description Creates a new pupil on the register
// @Tags pupils
// @Accept json
// @Produce json
// @Param request body dto.CreatePupilRequest true "Pupil information"
// @Success 201 {object} dto.APIResponse{data=models.Pupil} "Pupil created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils [post]
func (c *PupilController) CreatePupil(ctx *gin.Context) {
	var req dto.CreatePupilRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pupil data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pupil := &models.Pupil{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FormID:    req.FormID,
		Notes:     req.Notes,
	}
	if err := c.pupilService.CreatePupil(ctx, pupil); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      pupil,
		Timestamp: time.Now(),
	})
}

// UpdatePupil updates an existing pupil
// @Summary Update a pupil
// @Description Replaces all mutable fields of a pupil
// @Tags pupils
// @Accept json
// @Produce json
// @Param id path int true "Pupil ID"
// @Param request body dto.CreatePupilRequest true "Updated pupil information"
// @Success 200 {object} dto.APIResponse{data=models.Pupil} "Pupil updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/{id} [put]
func (c *PupilController) UpdatePupil(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "pupil ID")
	if !ok {
		return
	}

	var req dto.CreatePupilRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pupil data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pupil := &models.Pupil{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FormID:    req.FormID,
		Notes:     req.Notes,
	}
	if err := c.pupilService.UpdatePupil(ctx, pupil); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pupil,
		Timestamp: time.Now(),
	})
}

// DeletePupil deletes a pupil
// @Summary Delete a pupil
// @Description Deletes a pupil together with their assignments and overrides
// @Tags pupils
// @Accept json
// @Produce json
// @Param id path int true "Pupil ID"
// @Success 204 "Pupil deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pupil ID"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/{id} [delete]
func (c *PupilController) DeletePupil(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "pupil ID")
	if !ok {
		return
	}

	if err := c.pupilService.DeletePupil(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// UploadPupils imports pupils from a CSV file
// @Summary Bulk import pupils
// @Description Imports pupils from an uploaded CSV file with columns first_name, last_name, form_id, notes
// @Tags pupils
// @Accept multipart/form-data
// @Produce json
// @Param csvfile formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.CSVImportResult} "Pupils imported successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing CSV file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/upload [post]
func (c *PupilController) UploadPupils(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("csvfile")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No CSV file uploaded")
		errorDetail = errorDetail.WithField("csvfile")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The upload is archived first; a failed import keeps the file so it can
	// be replayed, a successful one removes it.
	path, err := c.storage.SaveFile(fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := c.storage.Open(path)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	imported, err := c.pupilService.ImportCSV(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.storage.DeleteFile(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove imported CSV archive")
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CSVImportResult{
			Message:  fmt.Sprintf("Successfully imported %d pupils", imported),
			Imported: imported,
		},
		Timestamp: time.Now(),
	})
}

// GetProfile retrieves a pupil profile by id or name
// @Summary Get pupil profile
// @Description Retrieves the composite profile for a pupil identified by pupil_id or by a name fragment
// @Tags pupils
// @Accept json
// @Produce json
// @Param pupil_id query int false "Pupil ID"
// @Param name query string false "Name fragment, matched case-insensitively against first and last name"
// @Success 200 {object} dto.APIResponse{data=dto.PupilProfile} "Profile retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Neither pupil_id nor name given"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/profile [get]
func (c *PupilController) GetProfile(ctx *gin.Context) {
	var (
		profile *dto.PupilProfile
		err     error
	)

	switch {
	case ctx.Query("pupil_id") != "":
		var id int64
		id, err = strconv.ParseInt(ctx.Query("pupil_id"), 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pupil ID")
			errorDetail = errorDetail.WithDetails("Pupil ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		profile, err = c.profileService.GetProfileByID(ctx, id)
	case ctx.Query("name") != "":
		profile, err = c.profileService.GetProfileByName(ctx, ctx.Query("name"))
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Either pupil_id or name must be given")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// UpdateProfile partially updates the pupil behind a profile
// @Summary Update pupil profile
// @Description Applies a partial update; omitted fields keep their values and form_id set to null detaches the form
// @Tags pupils
// @Accept json
// @Produce json
// @Param id path int true "Pupil ID"
// @Param request body dto.UpdatePupilRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PupilProfile} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Pupil not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pupils/profile/{id} [put]
func (c *PupilController) UpdateProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "pupil ID")
	if !ok {
		return
	}

	var req dto.UpdatePupilRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}
