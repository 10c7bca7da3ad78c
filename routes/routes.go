package routes

import (
	"net/http"
	"time"

	"diarista/handlers"
	"diarista/middleware"
	"diarista/models"
	"diarista/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.User.LogoutHandler)
		api.GET("/me", hb.User.GetProfileHandler)
		api.PUT("/me", hb.User.UpdateProfileHandler)
		api.PUT("/me/password", hb.User.UpdatePasswordHandler)
		api.DELETE("/me", hb.User.DeleteAccountHandler)
	}
}

// RegisterWorkerRoutes registers the worker search surface.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.User.SearchWorkersHandler)
		api.GET("/:id", hb.User.GetWorkerHandler)
	}
}

// RegisterEngagementRoutes registers the engagement lifecycle and its
// message thread.
func RegisterEngagementRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/engagements")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleHirer), hb.Engagement.RequestHandler)
		api.GET("", hb.Engagement.ListHandler)
		api.GET("/dashboard", hb.Engagement.DashboardHandler)
		api.GET("/:id", hb.Engagement.GetHandler)
		api.POST("/:id/accept", middleware.RequireRole(models.RoleWorker), hb.Engagement.AcceptHandler)
		api.POST("/:id/decline", middleware.RequireRole(models.RoleWorker), hb.Engagement.DeclineHandler)

		api.POST("/:id/messages", hb.Message.SendHandler)
		api.GET("/:id/messages", hb.Message.ListHandler)
	}
}

// RegisterShiftRoutes registers the shift clock endpoints.
func RegisterShiftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shifts")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/:engagementID/status", hb.Shift.StatusHandler)
		api.POST("/:engagementID/:action", middleware.RequireRole(models.RoleWorker), hb.Shift.ActionHandler)
	}
}

// RegisterRatingRoutes registers engagement rating endpoints.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.Rating.SubmitHandler)
		api.PUT("/:id", hb.Rating.UpdateHandler)
		api.DELETE("/:id", hb.Rating.DeleteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": status})
	})
}

// RegisterAdminRoutes sets up endpoints for back-office operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.GET("/users", hb.Admin.ListUsersHandler)
		adminGroup.GET("/engagements", hb.Admin.ListEngagementsHandler)
		adminGroup.GET("/shifts", hb.Admin.ListShiftsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterEngagementRoutes(r, hb)
	RegisterShiftRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r, hb)
}
