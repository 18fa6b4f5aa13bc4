package app

import (
	"database/sql"
	"fmt"
	"log"

	"profix/internal/authz"
	"profix/internal/config"
	"profix/internal/handlers"
	"profix/internal/middleware"
	"profix/internal/pdf"
	"profix/internal/repositories"
	"profix/internal/routes"
	"profix/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "profix/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// ключ подписи сессий — из конфига
	middleware.JWTKey = []byte(cfg.Auth.JWTSecret)

	// === Repos ===
	otpRepo := repositories.NewOTPVerificationRepository(db)
	pmRepo := repositories.NewProjectManagerRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	requestRepo := repositories.NewServiceRequestRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	noteRepo := repositories.NewRequestNoteRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	sessionService := services.NewSessionService(middleware.JWTKey, cfg.OTP.SessionTTL())

	otpService := services.NewOTPService(otpRepo, pmRepo, emailService, sessionService, authz.RolePM)
	otpService.CodeTTL = cfg.OTP.TTL()
	otpService.MaxSends = cfg.OTP.MaxSends
	otpService.SendWindow = cfg.OTP.SendWindow()

	// Telegram-уведомления админского чата (опционально)
	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	}

	requestService := services.NewRequestService(requestRepo, profileRepo, noteRepo, pmRepo, emailService, telegramService)
	pmService := services.NewPMService(pmRepo)
	catalogService := services.NewCatalogService(serviceRepo)
	analyticsService := services.NewAnalyticsService(requestRepo, pmRepo)

	reportGen := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(otpService, sessionService, adminRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	requestHandler := handlers.NewRequestHandler(requestService)
	pmHandler := handlers.NewPMHandler(requestService, pmService)
	adminHandler := handlers.NewAdminHandler(requestService, pmService, analyticsService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Роуты (JWT — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		authHandler,
		catalogHandler,
		requestHandler,
		pmHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
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
