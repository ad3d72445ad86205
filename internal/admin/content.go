package admin

import (
	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPortfolioItemsHandler(c *gin.Context) {
	items, err := h.db.ListPortfolioItems(c.Query("featured") == "true")
	respondList(h, c, items, err, "Failed to list portfolio items")
}

func (h *Handler) CreatePortfolioItemHandler(c *gin.Context) {
	create(h, c, &model.PortfolioItem{}, func(i *model.PortfolioItem) { i.ID = 0 }, h.db.CreatePortfolioItem, "Failed to create portfolio item")
}

func (h *Handler) GetPortfolioItemHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.db.GetPortfolioItem(id)
	respondOne(h, c, item, err, "Failed to get portfolio item")
}

func (h *Handler) UpdatePortfolioItemHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.PortfolioItem, error) { return h.db.GetPortfolioItem(id) },
		func(i *model.PortfolioItem) { i.ID = id },
		h.db.UpdatePortfolioItem,
		"Failed to update portfolio item")
}

func (h *Handler) DeletePortfolioItemHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeletePortfolioItem(id), "Failed to delete portfolio item")
}

// ListBlogPostsHandler lists drafts too; ?published=true narrows to published posts.
func (h *Handler) ListBlogPostsHandler(c *gin.Context) {
	posts, err := h.db.ListBlogPosts(c.Query("published") == "true")
	respondList(h, c, posts, err, "Failed to list blog posts")
}

func (h *Handler) CreateBlogPostHandler(c *gin.Context) {
	create(h, c, &model.BlogPost{}, func(p *model.BlogPost) { p.ID = 0 }, h.db.CreateBlogPost, "Failed to create blog post")
}

func (h *Handler) GetBlogPostHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	post, err := h.db.GetBlogPost(id)
	respondOne(h, c, post, err, "Failed to get blog post")
}

func (h *Handler) UpdateBlogPostHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.BlogPost, error) { return h.db.GetBlogPost(id) },
		func(p *model.BlogPost) { p.ID = id },
		h.db.UpdateBlogPost,
		"Failed to update blog post")
}

func (h *Handler) DeleteBlogPostHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteBlogPost(id), "Failed to delete blog post")
}

func (h *Handler) ListMessagesHandler(c *gin.Context) {
	messages, err := h.db.ListMessages(c.Query("unread") == "true")
	respondList(h, c, messages, err, "Failed to list messages")
}

func (h *Handler) GetMessageHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.db.GetMessage(id)
	respondOne(h, c, msg, err, "Failed to get message")
}

func (h *Handler) MarkMessageReadHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.db.MarkMessageRead(id)
	respondOne(h, c, msg, err, "Failed to mark message read")
}

func (h *Handler) DeleteMessageHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteMessage(id), "Failed to delete message")
}

func (h *Handler) ListAgentsHandler(c *gin.Context) {
	agents, err := h.db.ListAgents(c.Query("active") == "true")
	respondList(h, c, agents, err, "Failed to list agents")
}

func (h *Handler) CreateAgentHandler(c *gin.Context) {
	agent := &model.Agent{IsActive: true}
	create(h, c, agent, func(a *model.Agent) { a.ID = "" }, h.db.CreateAgent, "Failed to create agent")
}

func (h *Handler) GetAgentHandler(c *gin.Context) {
	agent, err := h.db.GetAgent(c.Param("id"))
	respondOne(h, c, agent, err, "Failed to get agent")
}

func (h *Handler) UpdateAgentHandler(c *gin.Context) {
	id := c.Param("id")
	update(h, c,
		func() (*model.Agent, error) { return h.db.GetAgent(id) },
		func(a *model.Agent) { a.ID = id },
		h.db.UpdateAgent,
		"Failed to update agent")
}

func (h *Handler) DeleteAgentHandler(c *gin.Context) {
	h.remove(c, h.db.DeleteAgent(c.Param("id")), "Failed to delete agent")
}
