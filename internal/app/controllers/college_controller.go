package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/app/services"
	"github.com/prashikshan/backend/internal/middleware"
	"github.com/rs/zerolog"
)

// CollegeController handles college admin endpoints and the public
// college picker.
type CollegeController struct {
	collegeService *services.CollegeService
	logger         zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService *services.CollegeService, logger zerolog.Logger) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
		logger:         logger,
	}
}

// List returns all colleges for the registration picker
func (c *CollegeController) List(ctx *gin.Context) {
	colleges, err := c.collegeService.ListColleges(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: colleges})
}

// Stats returns the admin dashboard counters
func (c *CollegeController) Stats(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	stats, err := c.collegeService.Stats(ctx.Request.Context(), adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}

// PendingStudents lists students awaiting approval in the admin's college
func (c *CollegeController) PendingStudents(ctx *gin.Context) {
	c.listStudents(ctx, models.StatusPending)
}

// ApprovedStudents lists approved students in the admin's college
func (c *CollegeController) ApprovedStudents(ctx *gin.Context) {
	c.listStudents(ctx, models.StatusApproved)
}

func (c *CollegeController) listStudents(ctx *gin.Context, status models.StudentStatus) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	students, err := c.collegeService.ListStudentsByStatus(ctx.Request.Context(), adminID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students})
}

// ApproveStudent sets a student's approval status
func (c *CollegeController) ApproveStudent(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student id")))
		return
	}

	var req dto.ApproveStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	status, err := c.collegeService.ApproveStudent(ctx.Request.Context(), adminID, studentID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"message": "Student status updated",
		"status":  status,
	}})
}

// VerifyMatch checks a pending student against the college roster
func (c *CollegeController) VerifyMatch(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student id")))
		return
	}

	result, err := c.collegeService.VerifyMatch(ctx.Request.Context(), adminID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// AddRosterRecord adds one record to the college roster
func (c *CollegeController) AddRosterRecord(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}

	var req dto.AddRosterRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	record, err := c.collegeService.AddRosterRecord(ctx.Request.Context(), adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: record})
}

// ListRosterRecords lists the college roster, newest first
func (c *CollegeController) ListRosterRecords(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	records, err := c.collegeService.ListRosterRecords(ctx.Request.Context(), adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: records})
}

// GetProfile returns the admin profile with its college record
func (c *CollegeController) GetProfile(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}
	profile, err := c.collegeService.GetProfile(ctx.Request.Context(), adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

// UpdateProfile updates the admin profile and its college record
func (c *CollegeController) UpdateProfile(ctx *gin.Context) {
	adminID, ok := middleware.UserID(ctx)
	if !ok {
		abortMissingIdentity(ctx)
		return
	}

	var req dto.UpdateCollegeProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return
	}

	idProof, _ := ctx.FormFile("idProof")
	authLetter, _ := ctx.FormFile("authLetter")

	profile, err := c.collegeService.UpdateProfile(ctx.Request.Context(), adminID, &req, idProof, authLetter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

func abortMissingIdentity(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}
