package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/app/services"
	"github.com/prashikshan/backend/internal/middleware"
	"github.com/rs/zerolog"
)

// EmployerController handles the company profile and postings overview
type EmployerController struct {
	employerService *services.EmployerService
	logger          zerolog.Logger
}

// NewEmployerController creates a new EmployerController
func NewEmployerController(employerService *services.EmployerService, logger zerolog.Logger) *EmployerController {
	return &EmployerController{
		employerService: employerService,
		logger:          logger,
	}
}

// GetProfile returns the employer's merged profile
func (c *EmployerController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	profile, err := c.employerService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

// UpdateProfile merges submitted form fields and documents into the profile
func (c *EmployerController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Expected multipart form data").WithDetails(err.Error())))
		return
	}

	files := map[string]*multipart.FileHeader{}
	for field, headers := range form.File {
		if len(headers) > 0 {
			files[field] = headers[0]
		}
	}

	profile, err := c.employerService.UpdateProfile(ctx.Request.Context(), userID, form.Value, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

// ListInternships lists the employer's postings with application counts
func (c *EmployerController) ListInternships(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	internships, err := c.employerService.ListInternships(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, internships)
}
