package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/oakmere/senreg/internal/app/controllers"
	"github.com/oakmere/senreg/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pupilController *controllers.PupilController,
	pupilCategoryController *controllers.PupilCategoryController,
	needController *controllers.NeedController,
	categoryController *controllers.CategoryController,
	deviceController *controllers.DeviceController,
	formController *controllers.FormController,
) {
	api := router.Group("/api")

	// Pupil routes. The fixed paths (upload, profile) must come before the
	// :id matchers.
	pupils := api.Group("/pupils")
	{
		pupils.GET("", pupilController.GetAllPupils)
		pupils.POST("", pupilController.CreatePupil)
		pupils.POST("/upload", pupilController.UploadPupils)
		pupils.GET("/profile", pupilController.GetProfile)
		pupils.PUT("/profile/:id", pupilController.UpdateProfile)
		pupils.GET("/:id", pupilController.GetPupilByID)
		pupils.PUT("/:id", pupilController.UpdatePupil)
		pupils.DELETE("/:id", pupilController.DeletePupil)
	}

	// Category assignments, overrides and the effective-needs view
	pupilCategories := api.Group("/pupil-categories")
	{
		pupilCategories.GET("/:pupilId/effective-needs", pupilCategoryController.GetEffectiveNeeds)
		pupilCategories.GET("/:pupilId/need-overrides", pupilCategoryController.GetNeedOverrides)
		pupilCategories.POST("/need-override", pupilCategoryController.CreateNeedOverride)
		pupilCategories.PUT("/need-override/:overrideId", pupilCategoryController.UpdateNeedOverride)
		pupilCategories.DELETE("/need-override/:overrideId", pupilCategoryController.DeleteNeedOverride)
		pupilCategories.GET("/:pupilId/categories", pupilCategoryController.GetPupilCategories)
		pupilCategories.POST("/assign-category", pupilCategoryController.AssignCategory)
		pupilCategories.DELETE("/:pupilId/categories/:categoryId", pupilCategoryController.RemoveCategory)
	}

	// Need catalogue routes
	needs := api.Group("/needs")
	{
		needs.GET("", needController.GetAllNeeds)
		needs.POST("", needController.CreateNeed)
		needs.GET("/:id", needController.GetNeedByID)
		needs.PUT("/:id", needController.UpdateNeed)
		needs.DELETE("/:id", needController.DeleteNeed)
		needs.GET("/:id/categories", needController.GetNeedCategories)
		needs.GET("/:id/devices", needController.GetNeedDevices)
		needs.POST("/:id/devices", needController.AssignDeviceToNeed)
		needs.DELETE("/:id/devices/:deviceId", needController.RemoveDeviceFromNeed)
	}

	// Category catalogue routes
	categories := api.Group("/categories")
	{
		categories.GET("", categoryController.GetAllCategories)
		categories.POST("", categoryController.CreateCategory)
		categories.GET("/:id", categoryController.GetCategoryByID)
		categories.PUT("/:id", categoryController.UpdateCategory)
		categories.DELETE("/:id", categoryController.DeleteCategory)
		categories.GET("/:id/needs", categoryController.GetCategoryNeeds)
		categories.POST("/:id/needs", categoryController.AddNeedToCategory)
		categories.DELETE("/:id/needs/:needId", categoryController.RemoveNeedFromCategory)
	}

	// Device inventory routes
	devices := api.Group("/devices")
	{
		devices.GET("", deviceController.GetAllDevices)
		devices.POST("", deviceController.CreateDevice)
		devices.GET("/unassigned", deviceController.GetUnassignedDevices)
		devices.GET("/:id", deviceController.GetDeviceByID)
		devices.PUT("/:id", deviceController.UpdateDevice)
		devices.DELETE("/:id", deviceController.DeleteDevice)
	}

	// Form routes (read-only reference data)
	forms := api.Group("/forms")
	{
		forms.GET("", formController.GetAllForms)
		forms.GET("/:id", formController.GetFormByID)
	}

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
