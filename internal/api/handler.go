package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ubuygold/folioapi/internal/auth"
	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultUsageLimit = 50
	maxUsageLimit     = 500
)

// Handler serves the read-mostly public API consumed by the portfolio front end.
type Handler struct {
	db     db.Service
	logger *slog.Logger
}

func NewHandler(dbService db.Service, logger *slog.Logger) *Handler {
	return &Handler{db: dbService, logger: logger.With("component", "api")}
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.logger.Error(message, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func writeList[T any](h *Handler, c *gin.Context, items []T, err error, message string) {
	if err != nil {
		h.fail(c, err, message)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListPortfolio(c *gin.Context) {
	items, err := h.db.ListPortfolioItems(c.Query("featured") == "true")
	writeList(h, c, items, err, "Failed to list portfolio items")
}

func (h *Handler) GetPortfolioItem(c *gin.Context) {
	item, err := h.db.GetPortfolioItemBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to get portfolio item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListBlogPosts(c *gin.Context) {
	posts, err := h.db.ListBlogPosts(true)
	writeList(h, c, posts, err, "Failed to list blog posts")
}

// GetBlogPost serves a published post; drafts answer 404.
func (h *Handler) GetBlogPost(c *gin.Context) {
	post, err := h.db.GetPublishedBlogPostBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to get blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.db.ListAgents(true)
	writeList(h, c, agents, err, "Failed to list agents")
}

// GetAgent serves an active agent; inactive ones answer 404.
func (h *Handler) GetAgent(c *gin.Context) {
	agent, err := h.db.GetAgent(c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to get agent")
		return
	}
	if !agent.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

type MessageRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Subject string `json:"subject" binding:"max=255"`
	Body    string `json:"body" binding:"required"`
}

// CreateMessage stores a contact-form submission.
func (h *Handler) CreateMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	msg := &model.Message{Name: req.Name, Email: req.Email, Subject: req.Subject, Body: req.Body}
	if err := h.db.CreateMessage(msg); err != nil {
		h.fail(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "message": "Message received"})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.db.ListCategories()
	writeList(h, c, categories, err, "Failed to list categories")
}

func (h *Handler) ListTechnologies(c *gin.Context) {
	techs, err := h.db.ListTechnologies()
	writeList(h, c, techs, err, "Failed to list technologies")
}

// ListUsage returns the caller's own recent usage, newest first.
func (h *Handler) ListUsage(c *gin.Context) {
	apiKey, ok := auth.APIKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return
	}
	limit := defaultUsageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = min(n, maxUsageLimit)
	}
	logs, err := h.db.ListUsageLogs(apiKey.ID, limit)
	if err != nil {
		h.fail(c, err, "Failed to list usage")
		return
	}
	total, err := h.db.CountUsageLogs(apiKey.ID)
	if err != nil {
		h.fail(c, err, "Failed to list usage")
		return
	}
	if logs == nil {
		logs = []model.UsageLog{}
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "logs": logs})
}

// VerifyKey confirms the bearer token is valid and lists the domains it may be used from.
func (h *Handler) VerifyKey(c *gin.Context) {
	apiKey, ok := auth.APIKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return
	}
	integrations, err := h.db.ListIntegrations(apiKey.ID)
	if err != nil {
		h.fail(c, err, "Failed to verify key")
		return
	}
	domains := make([]string, 0, len(integrations))
	for _, integration := range integrations {
		domains = append(domains, integration.Domain)
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "name": apiKey.Name, "domains": domains})
}
