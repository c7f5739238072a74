package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/app/services"
	"github.com/prashikshan/backend/internal/middleware"
	"github.com/rs/zerolog"
)

// InternshipController handles internship posting and listing
type InternshipController struct {
	internshipService *services.InternshipService
	logger            zerolog.Logger
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService *services.InternshipService, logger zerolog.Logger) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
		logger:            logger,
	}
}

// Create posts a new internship owned by the calling employer
func (c *InternshipController) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}

	var req dto.CreateInternshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	internship, err := c.internshipService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: internship})
}

// List returns all active postings
func (c *InternshipController) List(ctx *gin.Context) {
	internships, err := c.internshipService.ListActive(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, internships)
}
