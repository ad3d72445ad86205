package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

var errIntegrationNotFound = fmt.Errorf("integration belongs to another key: %w", db.ErrNotFound)

func (h *Handler) ListAPIKeysHandler(c *gin.Context) {
	keys, err := h.db.ListAPIKeys()
	respondList(h, c, keys, err, "Failed to list API keys")
}

// CreateAPIKeyHandler stores a new key. The token is generated when the body omits it
// and new keys are active unless the body says otherwise.
func (h *Handler) CreateAPIKeyHandler(c *gin.Context) {
	key := &model.APIKey{IsActive: true}
	create(h, c, key, func(k *model.APIKey) { k.ID = 0 }, h.db.CreateAPIKey, "Failed to create API key")
}

func (h *Handler) GetAPIKeyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	key, err := h.db.GetAPIKey(id)
	respondOne(h, c, key, err, "Failed to get API key")
}

func (h *Handler) UpdateAPIKeyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.APIKey, error) { return h.db.GetAPIKey(id) },
		func(k *model.APIKey) { k.ID = id },
		h.db.UpdateAPIKey,
		"Failed to update API key")
}

func (h *Handler) DeleteAPIKeyHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.remove(c, h.db.DeleteAPIKey(id), "Failed to delete API key")
}

func (h *Handler) ListIntegrationsHandler(c *gin.Context) {
	keyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.db.GetAPIKey(keyID); err != nil {
		h.storeError(c, err, "Failed to list integrations")
		return
	}
	integrations, err := h.db.ListIntegrations(keyID)
	respondList(h, c, integrations, err, "Failed to list integrations")
}

func (h *Handler) CreateIntegrationHandler(c *gin.Context) {
	keyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.db.GetAPIKey(keyID); err != nil {
		h.storeError(c, err, "Failed to create integration")
		return
	}
	integration := &model.Integration{}
	create(h, c, integration,
		func(i *model.Integration) { i.ID, i.APIKeyID = 0, keyID },
		h.db.CreateIntegration,
		"Failed to create integration")
}

// loadIntegration fetches an integration and checks that it belongs to the key in the path.
func (h *Handler) loadIntegration(keyID, integrationID uint) (*model.Integration, error) {
	integration, err := h.db.GetIntegration(integrationID)
	if err != nil {
		return nil, err
	}
	if integration.APIKeyID != keyID {
		return nil, errIntegrationNotFound
	}
	return integration, nil
}

func (h *Handler) UpdateIntegrationHandler(c *gin.Context) {
	keyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	integrationID, ok := parseID(c, "integrationID")
	if !ok {
		return
	}
	update(h, c,
		func() (*model.Integration, error) { return h.loadIntegration(keyID, integrationID) },
		func(i *model.Integration) { i.ID, i.APIKeyID = integrationID, keyID },
		h.db.UpdateIntegration,
		"Failed to update integration")
}

func (h *Handler) DeleteIntegrationHandler(c *gin.Context) {
	keyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	integrationID, ok := parseID(c, "integrationID")
	if !ok {
		return
	}
	if _, err := h.loadIntegration(keyID, integrationID); err != nil {
		h.storeError(c, err, "Failed to delete integration")
		return
	}
	h.remove(c, h.db.DeleteIntegration(integrationID), "Failed to delete integration")
}

// ListUsageHandler returns the newest usage logs of a key and its total count.
// ?limit=N caps the number of logs (default 100, 0 for all).
func (h *Handler) ListUsageHandler(c *gin.Context) {
	keyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit := defaultUsageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	if _, err := h.db.GetAPIKey(keyID); err != nil {
		h.storeError(c, err, "Failed to list usage")
		return
	}
	logs, err := h.db.ListUsageLogs(keyID, limit)
	if err != nil {
		h.storeError(c, err, "Failed to list usage")
		return
	}
	total, err := h.db.CountUsageLogs(keyID)
	if err != nil {
		h.storeError(c, err, "Failed to list usage")
		return
	}
	if logs == nil {
		logs = []model.UsageLog{}
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "logs": logs})
}
