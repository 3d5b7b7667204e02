package routes

import (
	"github.com/gin-gonic/gin"

	"workboard/internal/handlers"
	"workboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	taskHandler *handlers.TaskHandler,
	uploadHandler *handlers.UploadHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", authHandler.Register)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// CLIENTS
	clients := r.Group("/clients")
	{
		clients.POST("/", clientHandler.Create)
		clients.GET("/", clientHandler.List)
		clients.GET("/:id", clientHandler.GetByID)
		clients.GET("/:id/counts", clientHandler.GetCounts)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
		tasks.POST("/:id/paid", taskHandler.TogglePaid)
	}

	// UPLOADS
	r.POST("/uploads", uploadHandler.Upload)

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/unpaid", reportHandler.GetUnpaidSummary)
		reports.GET("/clients/:id/statement", reportHandler.DownloadStatement)
		reports.POST("/unpaid/email", reportHandler.EmailUnpaidSummary)
	}

	return r
}
