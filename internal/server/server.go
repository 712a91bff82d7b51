package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/auth"
	"github.com/wingops/wingscore/internal/config"
	"github.com/wingops/wingscore/internal/handler"
	"github.com/wingops/wingscore/internal/middleware"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/token"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	hasher, err := auth.NewHasher(cfg.PasswordSecret)
	if err != nil {
		log.Fatalf("failed to initialize password hasher: %v", err)
	}
	codec, err := token.NewCodec(cfg.PasswordSecret, cfg.SessionSecret)
	if err != nil {
		log.Fatalf("failed to initialize token codec: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	rosterRepo := repository.NewRosterRepository(db)

	auditService := service.NewAuditService(auditRepo)
	adminAuthService := service.NewAdminAuthService(cfg.AdminSecrets)

	accountService := service.NewAccountService(
		userRepo, rosterRepo, hasher, codec, auditService,
		cfg.SessionTTL, cfg.RememberMeTTL,
	)
	adminService := service.NewAdminService(userRepo, scoreRepo, rosterRepo, adminAuthService, hasher, auditService)
	exerciseService := service.NewExerciseService(exerciseRepo)
	scoreService := service.NewScoreService(scoreRepo, exerciseRepo)
	conflictService := service.NewConflictService(db, userRepo, scoreRepo, adminAuthService, auditService)
	reportService := service.NewReportService(reportRepo, userRepo, rosterRepo, hasher, auditService)
	rosterService := service.NewRosterService(rosterRepo, userRepo)

	authHandler := handler.NewAuthHandler(accountService)
	scoreHandler := handler.NewScoreHandler(scoreService, exerciseService)
	reportHandler := handler.NewReportHandler(reportService)
	publicHandler := handler.NewPublicHandler(rosterService)
	adminHandler := handler.NewAdminHandler(
		adminAuthService, adminService, exerciseService,
		conflictService, reportService, rosterService, auditService,
	)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	authMiddleware := middleware.NewAuthMiddleware(codec, adminAuthService)

	api := router.Group("/api")

	// Public routes (no auth required)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/set-password", authHandler.SetPassword)
	}
	api.POST("/reports", reportHandler.Submit)
	api.GET("/wings", publicHandler.Wings)
	api.GET("/roster", publicHandler.Roster)
	api.GET("/exercises", scoreHandler.ListExercises)
	api.GET("/leaderboard", scoreHandler.Leaderboard)
	api.GET("/leaderboard/summary", scoreHandler.Summary)
	api.POST("/admin/auth", adminHandler.Auth)

	// Session-protected routes
	session := api.Group("")
	session.Use(authMiddleware.RequireAuth())
	{
		session.GET("/auth/verify", authHandler.Verify)
		session.POST("/auth/logout", authHandler.Logout)
		session.POST("/auth/change-password", authHandler.ChangePassword)
		session.DELETE("/auth/account", authHandler.DeleteAccount)
		session.POST("/scores", scoreHandler.Submit)
		session.GET("/scores/me", scoreHandler.MyScores)
	}

	// Admin routes (shared-secret bearer)
	adminGroup := api.Group("/admin")
	adminGroup.Use(authMiddleware.RequireAdmin())
	{
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.POST("/users", adminHandler.CreateUser)
		adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		adminGroup.POST("/users/:id/reset", adminHandler.ResetUser)
		adminGroup.POST("/users/:id/ban", adminHandler.BanUser)
		adminGroup.DELETE("/scores/:id", adminHandler.DeleteScore)
		adminGroup.POST("/exercises", adminHandler.CreateExercise)
		adminGroup.PUT("/exercises/:id", adminHandler.UpdateExercise)
		adminGroup.DELETE("/exercises/:id", adminHandler.DeleteExercise)
		adminGroup.GET("/conflicts", adminHandler.ListConflicts)
		adminGroup.POST("/conflicts/merge", adminHandler.MergeConflict)
		adminGroup.GET("/reports", adminHandler.ListReports)
		adminGroup.POST("/reports/:id/approve", adminHandler.ApproveReport)
		adminGroup.POST("/reports/:id/create-account", adminHandler.CreateAccountFromReport)
		adminGroup.POST("/reports/:id/dismiss", adminHandler.DismissReport)
		adminGroup.POST("/roster/upload", adminHandler.UploadRoster)
		adminGroup.GET("/audit", adminHandler.ListAudit)
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
