package api

import (
	"log/slog"

	"github.com/ubuygold/folioapi/internal/auth"
	"github.com/ubuygold/folioapi/internal/config"
	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/usage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the public API. Every route runs behind key validation,
// usage tracking and the domain check, in that order.
func SetupRoutes(router *gin.Engine, dbService db.Service, recorder *usage.Recorder, cfg *config.Config, logger *slog.Logger) {
	handler := NewHandler(dbService, logger)

	v1 := router.Group("/api/v1")
	v1.Use(
		auth.ValidateAPIKey(dbService, logger),
		usage.TrackUsage(recorder, cfg.Usage.MaxBodyBytes),
		auth.CheckDomain(dbService, logger),
	)
	{
		v1.GET("/portfolio", handler.ListPortfolio)
		v1.GET("/portfolio/:slug", handler.GetPortfolioItem)
		v1.GET("/blog", handler.ListBlogPosts)
		v1.GET("/blog/:slug", handler.GetBlogPost)
		v1.GET("/agents", handler.ListAgents)
		v1.GET("/agents/:id", handler.GetAgent)
		v1.POST("/messages", handler.CreateMessage)
		v1.GET("/categories", handler.ListCategories)
		v1.GET("/technologies", handler.ListTechnologies)
		v1.GET("/usage", handler.ListUsage)
		v1.GET("/keys/verify", handler.VerifyKey)
	}
}
