package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugangish/shelter-backend/internal/config"
	"github.com/mugangish/shelter-backend/internal/http/handlers"
	"github.com/mugangish/shelter-backend/internal/http/middleware"
	"github.com/mugangish/shelter-backend/internal/service"
)

// SetupRouter собирает таблицу маршрутов API.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	shelterHandler *handlers.ShelterHandler,
	searchHandler *handlers.SearchHandler,
	organizationHandler *handlers.OrganizationHandler,
	branchHandler *handlers.BranchHandler,
	reviewHandler *handlers.ReviewHandler,
	reportHandler *handlers.ReportHandler,
	verificationHandler *handlers.VerificationHandler,
	moderationHandler *handlers.ModerationHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", middleware.UUIDValidator("id"), authHandler.DeleteSession)
		protectedAuth.POST("/sessions/revoke-others", authHandler.DeleteOtherSessions)
	}

	// Публичные маршруты
	api.GET("/shelters/search", searchHandler.Search)
	api.GET("/geocode", searchHandler.Geocode)
	api.GET("/shelters/:id", middleware.UUIDValidator("id"), middleware.OptionalAuthMiddleware(tokenManager), shelterHandler.Get)
	api.GET("/shelters/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.List)
	api.GET("/shelters/:id/reports", middleware.UUIDValidator("id"), reportHandler.List)

	// Публичные формы: подача доступна и анонимно, но с ограничением частоты
	submitRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/shelters", submitRateLimit, middleware.OptionalAuthMiddleware(tokenManager), shelterHandler.Submit)
	api.POST("/shelters/:id/reviews", submitRateLimit, middleware.UUIDValidator("id"), reviewHandler.Submit)
	api.POST("/shelters/:id/reports", submitRateLimit, middleware.UUIDValidator("id"), reportHandler.Submit)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateMe)

		protected.GET("/shelters/my", shelterHandler.ListMine)
		protected.PUT("/shelters/:id", middleware.UUIDValidator("id"), shelterHandler.Update)
		protected.DELETE("/shelters/:id", middleware.UUIDValidator("id"), shelterHandler.Delete)
		protected.POST("/shelters/:id/claim", middleware.UUIDValidator("id"), shelterHandler.Claim)

		protected.POST("/organizations", organizationHandler.Create)
		protected.GET("/organizations/my", organizationHandler.GetMine)
		protected.GET("/organizations/:id", middleware.UUIDValidator("id"), organizationHandler.Get)
		protected.PUT("/organizations/:id", middleware.UUIDValidator("id"), organizationHandler.Update)
		protected.GET("/organizations/:id/shelters", middleware.UUIDValidator("id"), shelterHandler.ListByOrganization)
		protected.POST("/organizations/:id/branches", middleware.UUIDValidator("id"), branchHandler.Create)
		protected.GET("/organizations/:id/branches", middleware.UUIDValidator("id"), branchHandler.List)
		protected.PUT("/branches/:id", middleware.UUIDValidator("id"), branchHandler.Update)
		protected.DELETE("/branches/:id", middleware.UUIDValidator("id"), branchHandler.Delete)
		protected.GET("/branches/:id/shelters", middleware.UUIDValidator("id"), shelterHandler.ListByBranch)

		protected.POST("/verification", verificationHandler.Submit)

		protected.POST("/media/photos", mediaHandler.UploadPhoto)
		protected.POST("/media/documents", mediaHandler.UploadDocument)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.DeleteMedia)
	}

	// Консоль модерации
	admin := api.Group("/admin")
	admin.GET("/ws", wsHandler.Handle)
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminOnly())
	{
		admin.GET("/shelters/pending", moderationHandler.PendingShelters)
		admin.POST("/shelters/:id/approve", middleware.UUIDValidator("id"), moderationHandler.ApproveShelter)
		admin.POST("/shelters/:id/reject", middleware.UUIDValidator("id"), moderationHandler.RejectShelter)

		admin.GET("/verifications/pending", moderationHandler.PendingVerifications)
		admin.POST("/verifications/:id/approve", middleware.UUIDValidator("id"), moderationHandler.ApproveVerification)
		admin.POST("/verifications/:id/reject", middleware.UUIDValidator("id"), moderationHandler.RejectVerification)

		admin.GET("/reviews/pending", moderationHandler.PendingReviews)
		admin.POST("/reviews/:id/approve", middleware.UUIDValidator("id"), moderationHandler.ApproveReview)
		admin.POST("/reviews/:id/reject", middleware.UUIDValidator("id"), moderationHandler.RejectReview)

		admin.GET("/reports/pending", moderationHandler.PendingReports)
		admin.POST("/reports/:id/approve", middleware.UUIDValidator("id"), moderationHandler.ApproveReport)
		admin.POST("/reports/:id/reject", middleware.UUIDValidator("id"), moderationHandler.RejectReport)
	}

	return r
}
