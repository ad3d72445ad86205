package admin

import (
	"net/http"
	"strings"

	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.db.ListCategories()
	respondList(h, c, categories, err, "Failed to list categories")
}

func (h *Handler) CreateCategoryHandler(c *gin.Context) {
	create(h, c, &model.Category{}, func(cat *model.Category) { cat.ID = 0 }, h.db.CreateCategory, "Failed to create category")
}

func (h *Handler) GetCategoryHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.db.GetCategory(id)
	respondOne(h, c, category, err, "Failed to get category")
}

func (h *Handler) UpdateCategoryHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.Category, error) { return h.db.GetCategory(id) },
		func(cat *model.Category) { cat.ID = id },
		h.db.UpdateCategory,
		"Failed to update category")
}

func (h *Handler) DeleteCategoryHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteCategory(id), "Failed to delete category")
}

func (h *Handler) ListTechnologiesHandler(c *gin.Context) {
	techs, err := h.db.ListTechnologies()
	respondList(h, c, techs, err, "Failed to list technologies")
}

func (h *Handler) CreateTechnologyHandler(c *gin.Context) {
	create(h, c, &model.Technology{}, func(t *model.Technology) { t.ID = 0 }, h.db.CreateTechnology, "Failed to create technology")
}

func (h *Handler) GetTechnologyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tech, err := h.db.GetTechnology(id)
	respondOne(h, c, tech, err, "Failed to get technology")
}

func (h *Handler) UpdateTechnologyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.Technology, error) { return h.db.GetTechnology(id) },
		func(t *model.Technology) { t.ID = id },
		h.db.UpdateTechnology,
		"Failed to update technology")
}

func (h *Handler) DeleteTechnologyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteTechnology(id), "Failed to delete technology")
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) ListUsersHandler(c *gin.Context) {
	users, err := h.db.ListUsers()
	respondList(h, c, users, err, "Failed to list users")
}

func (h *Handler) CreateUserHandler(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	user := &model.User{Username: strings.TrimSpace(req.Username)}
	if user.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := user.SetPassword(req.Password); err != nil {
		h.storeError(c, err, "Failed to create user")
		return
	}
	if err := h.db.CreateUser(user); err != nil {
		h.storeError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) DeleteUserHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteUser(id), "Failed to delete user")
}
