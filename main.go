package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/franes/franes-backend/src/config"
	"github.com/franes/franes-backend/src/database"
	"github.com/franes/franes-backend/src/handlers"
	"github.com/franes/franes-backend/src/logging"
	"github.com/franes/franes-backend/src/middleware"
	"github.com/franes/franes-backend/src/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("auth_mode", cfg.AuthMode).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	issuer := services.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTLMinutes)
	userService := services.NewUserService(db.GetPool(), hasher)
	blogService := services.NewBlogService(db.GetPool())
	artService := services.NewArtService(db.GetPool())
	storyService := services.NewStoryScriptService(db.GetPool())
	curriculumService := services.NewCurriculumService(db.GetPool())

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	adminGuard := middleware.NewAdminGuard(cfg, issuer, userService)
	setupRoutes(router, adminGuard, db, userService, issuer, blogService, artService, storyService, curriculumService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

// corsConfig builds the CORS policy from configured origins; an empty list
// (or "*") allows every origin.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
		return corsCfg
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
			return corsCfg
		}
	}

	corsCfg.AllowOrigins = cfg.CORSOrigins
	return corsCfg
}

func setupRoutes(
	router *gin.Engine,
	adminGuard gin.HandlerFunc,
	db *database.Database,
	userService *services.UserService,
	issuer *services.TokenIssuer,
	blogService *services.BlogService,
	artService *services.ArtService,
	storyService *services.StoryScriptService,
	curriculumService *services.CurriculumService,
) {
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(userService, issuer)
	usersHandler := handlers.NewUsersHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	artHandler := handlers.NewArtHandler(artService)
	storyHandler := handlers.NewStoryScriptHandler(storyService)
	curriculumHandler := handlers.NewCurriculumHandler(curriculumService)

	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)

	// Credential endpoints are rate limited per IP
	auth := router.Group("/auth")
	auth.Use(middleware.NewAuthRateLimiter(middleware.RateLimitConfig{
		RequestsPerMinute: 10,
		Burst:             5,
	}))
	{
		auth.POST("/token", authHandler.HandleLogin)
		auth.POST("/bootstrap", authHandler.HandleBootstrap)
	}

	// User management requires admin auth throughout
	users := router.Group("/admin/users", adminGuard)
	{
		users.POST("", usersHandler.HandleCreate)
		users.GET("", usersHandler.HandleList)
		users.GET("/:id", usersHandler.HandleGet)
		users.PUT("/:id", usersHandler.HandleUpdate)
		users.DELETE("/:id", usersHandler.HandleDelete)
	}

	// Content: reads are public, mutations require admin auth
	blog := router.Group("/blog")
	{
		blog.GET("", blogHandler.HandleList)
		blog.GET("/:id", blogHandler.HandleGet)
		blog.POST("", adminGuard, blogHandler.HandleCreate)
		blog.PUT("/:id", adminGuard, blogHandler.HandleUpdate)
		blog.DELETE("/:id", adminGuard, blogHandler.HandleDelete)
	}

	art := router.Group("/art")
	{
		art.GET("", artHandler.HandleList)
		art.GET("/:id", artHandler.HandleGet)
		art.POST("", adminGuard, artHandler.HandleCreate)
		art.PUT("/:id", adminGuard, artHandler.HandleUpdate)
		art.DELETE("/:id", adminGuard, artHandler.HandleDelete)
	}

	stories := router.Group("/story-scripts")
	{
		stories.GET("", storyHandler.HandleList)
		stories.GET("/:id", storyHandler.HandleGet)
		stories.POST("", adminGuard, storyHandler.HandleCreate)
		stories.PUT("/:id", adminGuard, storyHandler.HandleUpdate)
		stories.DELETE("/:id", adminGuard, storyHandler.HandleDelete)
	}

	curriculum := router.Group("/curriculum")
	{
		curriculum.GET("", curriculumHandler.HandleList)
		curriculum.GET("/latest", curriculumHandler.HandleGetLatest)
		curriculum.GET("/latest/download", curriculumHandler.HandleDownloadLatest)
		curriculum.GET("/:id", curriculumHandler.HandleGet)
		curriculum.POST("", adminGuard, curriculumHandler.HandleCreate)
		curriculum.PUT("/:id", adminGuard, curriculumHandler.HandleUpdate)
		curriculum.DELETE("/:id", adminGuard, curriculumHandler.HandleDelete)
	}
}
