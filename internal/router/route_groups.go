package router

import (
	"gym_admin_backend/internal/handlers"
	"gym_admin_backend/internal/middleware"
	"gym_admin_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up account management. Profile lookup is open to any
// authenticated user; the rest is admin only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authenticatedGroup.GET("/auth/me", authHandler.Me)

	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.POST("", authHandler.Register)
		userRoutes.GET("", authHandler.GetUsers)
		userRoutes.PUT("/:id", authHandler.UpdateUser)
		userRoutes.DELETE("/:id", authHandler.DeleteUser)
	}
}

// SetupMemberRoutes sets up the member routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler, membershipHandler *handlers.MembershipHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		memberRoutes.POST("", memberHandler.CreateMember)
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/:id", memberHandler.GetMemberByID)
		memberRoutes.GET("/by-number/:number", memberHandler.GetMemberByNumber)
		memberRoutes.GET("/:id/active-membership", membershipHandler.GetActiveMembership)
		memberRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberRoutes.DELETE("/:id", memberHandler.DeactivateMember)
	}
}

// SetupPlanRoutes sets up the plan routes. Plan writes are admin only; the
// front desk still needs to read the catalog.
func SetupPlanRoutes(authenticatedGroup *gin.RouterGroup, planHandler *handlers.PlanHandler) {
	planWriteRoutes := authenticatedGroup.Group("/plans")
	planWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		planWriteRoutes.POST("", planHandler.CreatePlan)
		planWriteRoutes.PUT("/:id", planHandler.UpdatePlan)
		planWriteRoutes.DELETE("/:id", planHandler.DeactivatePlan)
	}

	authenticatedGroup.GET("/plans", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), planHandler.GetPlans)
	authenticatedGroup.GET("/plans/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), planHandler.GetPlanByID)
}

// SetupMembershipRoutes sets up the membership routes.
func SetupMembershipRoutes(authenticatedGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := authenticatedGroup.Group("/memberships")
	membershipRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		membershipRoutes.POST("", membershipHandler.CreateMembership)
		membershipRoutes.GET("", membershipHandler.GetMemberships)
		membershipRoutes.GET("/:id", membershipHandler.GetMembershipByID)
		membershipRoutes.PUT("/:id", membershipHandler.UpdateMembership)
		membershipRoutes.DELETE("/:id", membershipHandler.DeactivateMembership)
	}
}

// SetupVisitRoutes sets up the visit routes.
func SetupVisitRoutes(authenticatedGroup *gin.RouterGroup, visitHandler *handlers.VisitHandler) {
	visitRoutes := authenticatedGroup.Group("/visits")
	visitRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		visitRoutes.POST("", visitHandler.RecordVisit)
		visitRoutes.GET("", visitHandler.GetVisits)
		visitRoutes.GET("/:id", visitHandler.GetVisitByID)
		visitRoutes.PUT("/:id", visitHandler.UpdateVisit)
		visitRoutes.DELETE("/:id", visitHandler.DeleteVisit)
	}
}

// SetupStaffRoutes sets up the staff routes. Hiring and pay changes are admin
// only; reads are open to the front desk.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffWriteRoutes := authenticatedGroup.Group("/staff")
	staffWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		staffWriteRoutes.POST("", staffHandler.CreateStaff)
		staffWriteRoutes.PUT("/:id", staffHandler.UpdateStaff)
		staffWriteRoutes.DELETE("/:id", staffHandler.DeactivateStaff)
	}

	authenticatedGroup.GET("/staff", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), staffHandler.GetStaff)
	authenticatedGroup.GET("/staff/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), staffHandler.GetStaffByID)
}

// SetupSessionRoutes sets up the work-session routes.
func SetupSessionRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	sessionRoutes := authenticatedGroup.Group("/sessions")
	sessionRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		sessionRoutes.POST("", staffHandler.OpenSession)
		sessionRoutes.GET("", staffHandler.GetSessions)
		sessionRoutes.GET("/:id", staffHandler.GetSessionByID)
		sessionRoutes.PATCH("/:id/close", staffHandler.CloseSession)
		sessionRoutes.PUT("/:id", staffHandler.UpdateSession)
		sessionRoutes.DELETE("/:id", staffHandler.DeleteSession)
	}
}

// SetupCashRoutes sets up the cash ledger routes.
func SetupCashRoutes(authenticatedGroup *gin.RouterGroup, cashHandler *handlers.CashHandler) {
	cashRoutes := authenticatedGroup.Group("/cash-transactions")
	cashRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		cashRoutes.POST("", cashHandler.CreateTransaction)
		cashRoutes.GET("", cashHandler.GetTransactions)
		cashRoutes.GET("/:id", cashHandler.GetTransactionByID)
	}

	// Corrections and deletions are admin only.
	cashAdminRoutes := authenticatedGroup.Group("/cash-transactions")
	cashAdminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		cashAdminRoutes.PUT("/:id", cashHandler.UpdateTransaction)
		cashAdminRoutes.DELETE("/:id", cashHandler.DeleteTransaction)
	}
}

// SetupNotificationRoutes sets up the notification routes.
func SetupNotificationRoutes(authenticatedGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := authenticatedGroup.Group("/notifications")
	notificationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/cash", reportHandler.GetCashReport)
		reportRoutes.GET("/staff-hours", reportHandler.GetStaffHoursReport)
	}
}
