package admin

import (
	"log/slog"

	"github.com/ubuygold/folioapi/internal/auth"
	"github.com/ubuygold/folioapi/internal/config"
	"github.com/ubuygold/folioapi/internal/db"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, dbService db.Service, cfg *config.Config, logger *slog.Logger) {
	handler := NewHandler(dbService, logger)

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(auth.AdminAuthMiddleware(dbService, cfg.Admin.Password))
	{
		keysGroup := adminGroup.Group("/keys")
		{
			keysGroup.GET("", handler.ListAPIKeysHandler)
			keysGroup.POST("", handler.CreateAPIKeyHandler)
			keysGroup.GET("/:id", handler.GetAPIKeyHandler)
			keysGroup.PUT("/:id", handler.UpdateAPIKeyHandler)
			keysGroup.DELETE("/:id", handler.DeleteAPIKeyHandler)

			keysGroup.GET("/:id/integrations", handler.ListIntegrationsHandler)
			keysGroup.POST("/:id/integrations", handler.CreateIntegrationHandler)
			keysGroup.PUT("/:id/integrations/:integrationID", handler.UpdateIntegrationHandler)
			keysGroup.DELETE("/:id/integrations/:integrationID", handler.DeleteIntegrationHandler)

			keysGroup.GET("/:id/usage", handler.ListUsageHandler)
		}

		portfolioGroup := adminGroup.Group("/portfolio")
		{
			portfolioGroup.GET("", handler.ListPortfolioItemsHandler)
			portfolioGroup.POST("", handler.CreatePortfolioItemHandler)
			portfolioGroup.GET("/:id", handler.GetPortfolioItemHandler)
			portfolioGroup.PUT("/:id", handler.UpdatePortfolioItemHandler)
			portfolioGroup.DELETE("/:id", handler.DeletePortfolioItemHandler)
		}

		blogGroup := adminGroup.Group("/blog")
		{
			blogGroup.GET("", handler.ListBlogPostsHandler)
			blogGroup.POST("", handler.CreateBlogPostHandler)
			blogGroup.GET("/:id", handler.GetBlogPostHandler)
			blogGroup.PUT("/:id", handler.UpdateBlogPostHandler)
			blogGroup.DELETE("/:id", handler.DeleteBlogPostHandler)
		}

		messagesGroup := adminGroup.Group("/messages")
		{
			messagesGroup.GET("", handler.ListMessagesHandler)
			messagesGroup.GET("/:id", handler.GetMessageHandler)
			messagesGroup.POST("/:id/read", handler.MarkMessageReadHandler)
			messagesGroup.DELETE("/:id", handler.DeleteMessageHandler)
		}

		agentsGroup := adminGroup.Group("/agents")
		{
			agentsGroup.GET("", handler.ListAgentsHandler)
			agentsGroup.POST("", handler.CreateAgentHandler)
			agentsGroup.GET("/:id", handler.GetAgentHandler)
			agentsGroup.PUT("/:id", handler.UpdateAgentHandler)
			agentsGroup.DELETE("/:id", handler.DeleteAgentHandler)
		}

		categoriesGroup := adminGroup.Group("/categories")
		{
			categoriesGroup.GET("", handler.ListCategoriesHandler)
			categoriesGroup.POST("", handler.CreateCategoryHandler)
			categoriesGroup.GET("/:id", handler.GetCategoryHandler)
			categoriesGroup.PUT("/:id", handler.UpdateCategoryHandler)
			categoriesGroup.DELETE("/:id", handler.DeleteCategoryHandler)
		}

		technologiesGroup := adminGroup.Group("/technologies")
		{
			technologiesGroup.GET("", handler.ListTechnologiesHandler)
			technologiesGroup.POST("", handler.CreateTechnologyHandler)
			technologiesGroup.GET("/:id", handler.GetTechnologyHandler)
			technologiesGroup.PUT("/:id", handler.UpdateTechnologyHandler)
			technologiesGroup.DELETE("/:id", handler.DeleteTechnologyHandler)
		}

		usersGroup := adminGroup.Group("/users")
		{
			usersGroup.GET("", handler.ListUsersHandler)
			usersGroup.POST("", handler.CreateUserHandler)
			usersGroup.DELETE("/:id", handler.DeleteUserHandler)
		}
	}
}
