package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pedalboard/internal/auth"
	"pedalboard/internal/cache"
	"pedalboard/internal/config"
	"pedalboard/internal/handler"
	"pedalboard/internal/middleware"
	"pedalboard/internal/model"
	"pedalboard/internal/repository"
	"pedalboard/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if err := db.AutoMigrate(
		&model.User{},
		&model.Pedal{},
		&model.Board{},
		&model.Pedalboard{},
		&model.PedalPlacement{},
		&model.BoardPlacement{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadPrefix)
	if err != nil {
		return nil, err
	}

	suggCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	verifiers := auth.NewVerifierSet(cfg.VerifierIDs)

	// Setup Gin
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.AccessLog(log))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	pedalRepo := repository.NewPedalRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	pedalboardRepo := repository.NewPedalboardRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	pedalHandler := handler.NewPedalHandler(pedalRepo, store, verifiers)
	boardHandler := handler.NewBoardHandler(boardRepo, store, verifiers)
	pedalboardHandler := handler.NewPedalboardHandler(pedalboardRepo, pedalRepo, boardRepo, store, verifiers, suggCache)
	suggestionHandler := handler.NewSuggestionHandler(
		pedalboardRepo, pedalRepo, boardRepo, suggCache,
		cfg.SuggestionLimit, time.Duration(cfg.SuggestionTTLSec)*time.Second, log,
	)
	uploadHandler := handler.NewUploadHandler(store)

	// Public routes
	authLimit := middleware.RateLimitPerIP(rate.Limit(cfg.AuthRatePerSec), cfg.AuthRateBurst)
	r.POST("/register", authLimit, userHandler.Register)
	r.POST("/login", authLimit, userHandler.Login)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static(cfg.UploadPrefix, cfg.UploadDir)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Profile routes
		authorized.GET("/me", userHandler.Me)
		authorized.PUT("/me/avatar", userHandler.UpdateAvatar)

		// Pedal routes
		authorized.POST("/pedais", pedalHandler.Create)
		authorized.GET("/pedais", pedalHandler.GetOwned)
		authorized.GET("/pedais/todos", pedalHandler.Search)
		authorized.DELETE("/pedais/:id", pedalHandler.Delete)
		authorized.POST("/pedais/copiar/:id", pedalHandler.Copy)
		authorized.PATCH("/pedais/:id/verified", pedalHandler.SetVerified)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetOwned)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/copiar/:id", boardHandler.Copy)
		authorized.PATCH("/boards/:id/verified", boardHandler.SetVerified)

		// Pedalboard routes
		authorized.POST("/pedalboards", pedalboardHandler.Create)
		authorized.GET("/meus-pedalboards", pedalboardHandler.GetOwned)
		authorized.GET("/todos-pedalboards", pedalboardHandler.GetAll)
		authorized.GET("/pedalboards/search", pedalboardHandler.Search)
		authorized.GET("/pedalboards/sugestoes", suggestionHandler.Suggest)
		authorized.GET("/pedalboards/:id", pedalboardHandler.GetByID)
		authorized.PUT("/pedalboards/:id", pedalboardHandler.Update)
		authorized.DELETE("/pedalboards/:id", pedalboardHandler.Delete)
		authorized.POST("/pedalboards/:id/copiar", pedalboardHandler.Clone)
		authorized.POST("/pedalboards/:id/like", pedalboardHandler.ToggleLike)
		authorized.PATCH("/pedalboards/:id/verified", pedalboardHandler.SetVerified)

		// Upload route
		authorized.POST("/upload", uploadHandler.Upload)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.Log.Info("server exited properly")
}
