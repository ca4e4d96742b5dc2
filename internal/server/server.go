package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/goodnessw/election-api/internal/config"
	"github.com/goodnessw/election-api/internal/handlers"
	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/middleware/auth"
	"github.com/goodnessw/election-api/internal/middleware/events"
	"github.com/goodnessw/election-api/internal/realtime"
	"github.com/goodnessw/election-api/internal/services"
	"github.com/goodnessw/election-api/internal/storage/objectstore"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	repos      postgres.RepositoryContainer
	photoStore *objectstore.PhotoStore
	hub        *realtime.Hub
}

// New creates a new server instance. The photo store may be nil when
// the object store is unavailable; everything but photo uploads keeps
// working.
func New(cfg *config.Config, repos postgres.RepositoryContainer, photoStore *objectstore.PhotoStore) *Server {
	return &Server{
		config:     cfg,
		repos:      repos,
		photoStore: photoStore,
		hub:        realtime.NewHub(),
	}
}

// Start starts the realtime hub and the HTTP server. It blocks until
// the server stops.
func (s *Server) Start() error {
	go s.hub.Run()

	router, err := s.setupRouter()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() (*gin.Engine, error) {
	gin.SetMode(s.config.Server.GinMode)

	router := gin.New()

	router.Use(events.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	origins := strings.Split(s.config.CORS.AllowOrigins, ",")
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	tokens, err := auth.NewTokenManager(s.config.Auth.JWTSecret, s.config.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session tokens: %w", err)
	}

	votingService := services.NewVotingService(s.repos.Votes(), s.repos.Elections(), s.repos.Contestants(), s.hub)
	electionService := services.NewElectionService(s.repos.Elections(), s.hub)
	reportsService := services.NewReportsService(s.repos.Contestants(), s.repos.Elections(), s.repos.Votes())

	voteHandler := handlers.NewVoteHandler(votingService, s.repos.Votes())
	electionHandler := handlers.NewElectionHandler(electionService)
	contestantHandler := handlers.NewContestantHandler(s.repos.Contestants(), s.photoStore, s.hub)
	adminHandler := handlers.NewAdminHandler(s.repos.Admins(), tokens)
	reportHandler := handlers.NewReportHandler(reportsService)

	router.GET("/ping", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := s.repos.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"message": "Election API is running",
			"status":  status,
		})
	})

	router.GET("/ws", s.hub.HandleWebSocket)

	s.setupAPIRoutes(router, tokens, voteHandler, electionHandler, contestantHandler, adminHandler, reportHandler)

	return router, nil
}

// setupAPIRoutes configures all API routes. Public routes serve the
// voting page; everything under /api/admin (except login) requires a
// valid session token.
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	tokens *auth.TokenManager,
	voteHandler *handlers.VoteHandler,
	electionHandler *handlers.ElectionHandler,
	contestantHandler *handlers.ContestantHandler,
	adminHandler *handlers.AdminHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := router.Group("/api")
	{
		api.GET("/elections/active", electionHandler.GetActive)

		contestants := api.Group("/contestants")
		{
			contestants.GET("", contestantHandler.List)
			contestants.GET("/:id", contestantHandler.Get)
		}

		votes := api.Group("/votes")
		{
			votes.POST("", voteHandler.SubmitVote)
			votes.GET("/status", voteHandler.GetVoteStatus)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("")
			protected.Use(tokens.RequireAdmin())
			{
				protected.GET("/session", adminHandler.Session)

				protected.GET("/elections", electionHandler.List)
				protected.POST("/elections", electionHandler.Create)
				protected.POST("/elections/:id/start", electionHandler.Start)
				protected.POST("/elections/:id/end", electionHandler.End)
				protected.POST("/elections/:id/reset", electionHandler.Reset)
				protected.DELETE("/elections/:id", electionHandler.Delete)

				protected.POST("/contestants", contestantHandler.Create)
				protected.PUT("/contestants/:id", contestantHandler.Update)
				protected.POST("/contestants/:id/photo", contestantHandler.UploadPhoto)
				protected.DELETE("/contestants/:id", contestantHandler.Delete)

				protected.GET("/votes", voteHandler.ListVotes)
				protected.DELETE("/votes/:id", voteHandler.DeleteVote)

				protected.GET("/reports/summary", reportHandler.Summary)
			}
		}
	}
}
