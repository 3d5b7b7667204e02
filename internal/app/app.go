package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"workboard/internal/config"
	"workboard/internal/handlers"
	"workboard/internal/pdf"
	"workboard/internal/repositories"
	"workboard/internal/routes"
	"workboard/internal/services"
	"workboard/internal/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "workboard/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Storage ===
	store := storage.NewDiskStore(cfg.Storage.RootDir, cfg.Storage.Bucket, cfg.Storage.BaseURL)

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMin)*time.Minute,
	)
	userService := services.NewUserService(userRepo, authService)
	clientService := services.NewClientService(clientRepo, taskRepo, store)
	taskService := services.NewTaskService(taskRepo, store)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// PDF statements land next to the image bucket
	pdfGen := pdf.NewStatementGenerator(cfg.Storage.RootDir + "/statements")
	reportService := services.NewReportService(clientRepo, taskRepo, emailService, pdfGen)

	// === Handlers ===
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLDays) * 24 * time.Hour
	authHandler := handlers.NewAuthHandler(userService, authService, refreshTTL)
	clientHandler := handlers.NewClientHandler(clientService)
	taskHandler := handlers.NewTaskHandler(taskService, clientRepo)
	uploadHandler := handlers.NewUploadHandler(store)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public object URLs resolve against the disk bucket
	router.Static("/files/"+store.Bucket(), store.Root())

	routes.SetupRoutes(
		router,
		authService.Secret(),
		authHandler,
		clientHandler,
		taskHandler,
		uploadHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
