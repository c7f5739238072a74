package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/app/services"
	"github.com/prashikshan/backend/internal/middleware"
	"github.com/rs/zerolog"
)

// LogbookController handles the student's internship logbook
type LogbookController struct {
	logbookService *services.LogbookService
	logger         zerolog.Logger
}

// NewLogbookController creates a new LogbookController
func NewLogbookController(logbookService *services.LogbookService, logger zerolog.Logger) *LogbookController {
	return &LogbookController{
		logbookService: logbookService,
		logger:         logger,
	}
}

// Create adds a log entry for the calling student
func (c *LogbookController) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}

	var req dto.CreateLogEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	entry, err := c.logbookService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: entry})
}

// List returns the calling student's entries
func (c *LogbookController) List(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	entries, err := c.logbookService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// Update edits one of the calling student's entries
func (c *LogbookController) Update(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	entryID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLogEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	entry, err := c.logbookService.Update(ctx.Request.Context(), userID, entryID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entry})
}

// Delete removes one of the calling student's entries
func (c *LogbookController) Delete(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	entryID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.logbookService.Delete(ctx.Request.Context(), userID, entryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Log entry deleted"}})
}
