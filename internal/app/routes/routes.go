package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/controllers"
	"github.com/prashikshan/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	studentController *controllers.StudentController,
	employerController *controllers.EmployerController,
	internshipController *controllers.InternshipController,
	logbookController *controllers.LogbookController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	auth := router.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	router.GET("/api/college/list", collegeController.List)
	router.GET("/internships", internshipController.List)
	router.GET("/profile/:userId", profileController.Get)

	// Application views are public by student id, consumed by the
	// college dashboard before the student is linked.
	studentPublic := router.Group("/api/student")
	{
		studentPublic.GET("/applications/summary/:studentId", studentController.ApplicationSummary)
		studentPublic.GET("/applications/details/:studentId", studentController.ApplicationDetails)
		studentPublic.GET("/jobs/eligible/:studentId", studentController.EligibleJobs)
	}

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.POST("/auth/logout", authController.Logout)

		college := authenticated.Group("/api/college")
		{
			college.GET("/stats", collegeController.Stats)
			college.GET("/pending-students", collegeController.PendingStudents)
			college.GET("/approved-students", collegeController.ApprovedStudents)
			college.POST("/approve-student/:id", collegeController.ApproveStudent)
			college.POST("/verify-match/:id", collegeController.VerifyMatch)
			college.POST("/student-record", collegeController.AddRosterRecord)
			college.GET("/student-records", collegeController.ListRosterRecords)
			college.GET("/profile", collegeController.GetProfile)
			college.PUT("/profile", collegeController.UpdateProfile)
		}

		student := authenticated.Group("/api/student")
		{
			student.POST("/link-college", studentController.LinkCollege)
			student.GET("/profile", studentController.GetProfile)
			student.PUT("/profile", studentController.UpdateProfile)
		}

		company := authenticated.Group("/api/company")
		{
			company.GET("/profile", employerController.GetProfile)
			company.POST("/profile", employerController.UpdateProfile)
			company.GET("/internships", employerController.ListInternships)
		}

		authenticated.POST("/internships", internshipController.Create)

		logbooks := authenticated.Group("/logbooks")
		{
			logbooks.POST("", logbookController.Create)
			logbooks.GET("", logbookController.List)
			logbooks.PUT("/:id", logbookController.Update)
			logbooks.DELETE("/:id", logbookController.Delete)
		}
	}
}
