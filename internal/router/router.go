package router

import (
	"database/sql"

	"gym_admin_backend/internal/handlers"
	"gym_admin_backend/internal/middleware"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	txRunner := repositories.NewTxRunner(db)
	userRepo := repositories.NewUserRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	visitRepo := repositories.NewVisitRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	cashRepo := repositories.NewCashRepository(db)

	// Initialize Services
	authService := services.NewAuthService(userRepo, txRunner)
	memberService := services.NewMemberService(memberRepo, db)
	planService := services.NewPlanService(planRepo, db)
	membershipService := services.NewMembershipService(membershipRepo, memberRepo, planRepo, txRunner)
	visitService := services.NewVisitService(visitRepo, membershipRepo, memberRepo, txRunner)
	staffService := services.NewStaffService(staffRepo, db)
	cashService := services.NewCashService(cashRepo, db)
	notificationService := services.NewNotificationService(membershipRepo)
	reportService := services.NewReportService(cashRepo, staffRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	planHandler := handlers.NewPlanHandler(planService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	visitHandler := handlers.NewVisitHandler(visitService)
	staffHandler := handlers.NewStaffHandler(staffService)
	cashHandler := handlers.NewCashHandler(cashService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	publicAuthRoutes := apiV1.Group("/auth")
	{
		publicAuthRoutes.POST("/login", authHandler.Login)
		publicAuthRoutes.POST("/refresh-token", authHandler.Refresh)
	}

	// Everything else requires a valid token
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupUserRoutes(authenticated, authHandler)
		SetupMemberRoutes(authenticated, memberHandler, membershipHandler)
		SetupPlanRoutes(authenticated, planHandler)
		SetupMembershipRoutes(authenticated, membershipHandler)
		SetupVisitRoutes(authenticated, visitHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupSessionRoutes(authenticated, staffHandler)
		SetupCashRoutes(authenticated, cashHandler)
		SetupNotificationRoutes(authenticated, notificationHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
