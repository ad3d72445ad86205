package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ubuygold/folioapi/internal/db"

	"github.com/gin-gonic/gin"
)

const defaultUsageLimit = 100

type Handler struct {
	db     db.Service
	logger *slog.Logger
}

func NewHandler(dbService db.Service, logger *slog.Logger) *Handler {
	return &Handler{db: dbService, logger: logger.With("component", "admin")}
}

// parseID reads a numeric path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// storeError maps a storage error onto 404 or 500.
func (h *Handler) storeError(c *gin.Context, err error, message string) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.logger.Error(message, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func respondList[T any](h *Handler, c *gin.Context, items []T, err error, message string) {
	if err != nil {
		h.storeError(c, err, message)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func respondOne[T any](h *Handler, c *gin.Context, item *T, err error, message string) {
	if err != nil {
		h.storeError(c, err, message)
		return
	}
	c.JSON(http.StatusOK, item)
}

// create binds the body onto record and stores it, answering 201 with the stored row.
// clearID drops any id the client sent so the database assigns a fresh one.
func create[T any](h *Handler, c *gin.Context, record *T, clearID func(*T), store func(*T) error, message string) {
	if err := c.ShouldBindJSON(record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	clearID(record)
	if err := store(record); err != nil {
		h.storeError(c, err, message)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// update loads the current row, overlays the request body, restores the id
// and writes the result back. Fields missing from the body keep their value.
func update[T any](h *Handler, c *gin.Context, load func() (*T, error), setID func(*T), store func(*T) error, message string) {
	record, err := load()
	if err != nil {
		h.storeError(c, err, message)
		return
	}
	if err := c.ShouldBindJSON(record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	setID(record)
	if err := store(record); err != nil {
		h.storeError(c, err, message)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) remove(c *gin.Context, err error, message string) {
	if err != nil {
		h.storeError(c, err, message)
		return
	}
	c.Status(http.StatusNoContent)
}
