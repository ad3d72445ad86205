package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ubuygold/folioapi/internal/config"
	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/logger"
	"github.com/ubuygold/folioapi/internal/model"
	"github.com/ubuygold/folioapi/internal/usage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	siteKey    = "site-key"
	siteOrigin = "https://www.portfolio.dev"
)

type fixture struct {
	service  db.Service
	recorder *usage.Recorder
	router   *gin.Engine
	key      *model.APIKey
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, err := db.NewService(config.DatabaseConfig{Type: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })

	key := &model.APIKey{Name: "portfolio", Key: siteKey, IsActive: true}
	require.NoError(t, service.CreateAPIKey(key))
	require.NoError(t, service.CreateIntegration(&model.Integration{APIKeyID: key.ID, Domain: "*.portfolio.dev"}))
	require.NoError(t, service.CreateIntegration(&model.Integration{APIKeyID: key.ID, Domain: "localhost"}))

	cfg := &config.Config{Usage: config.UsageConfig{MaxBodyBytes: 4096}}
	log := logger.Discard()
	recorder := usage.NewRecorder(service, 64, log)
	t.Cleanup(recorder.Close)

	router := gin.New()
	SetupRoutes(router, service, recorder, cfg, log)
	return &fixture{service: service, recorder: recorder, router: router, key: key}
}

func (f *fixture) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+siteKey)
	req.Header.Set("Origin", siteOrigin)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestPublicContent(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.service.CreatePortfolioItem(&model.PortfolioItem{Title: "A", Slug: "a", Featured: true}))
	require.NoError(t, f.service.CreatePortfolioItem(&model.PortfolioItem{Title: "B", Slug: "b"}))
	require.NoError(t, f.service.CreateBlogPost(&model.BlogPost{Title: "Live", Slug: "live", Published: true}))
	require.NoError(t, f.service.CreateBlogPost(&model.BlogPost{Title: "Draft", Slug: "draft"}))
	require.NoError(t, f.service.CreateCategory(&model.Category{Name: "Web", Slug: "web"}))
	require.NoError(t, f.service.CreateTechnology(&model.Technology{Name: "Go"}))

	t.Run("portfolio", func(t *testing.T) {
		assert.Len(t, decode[[]model.PortfolioItem](t, f.request(http.MethodGet, "/api/v1/portfolio", "")), 2)
		assert.Len(t, decode[[]model.PortfolioItem](t, f.request(http.MethodGet, "/api/v1/portfolio?featured=true", "")), 1)

		rr := f.request(http.MethodGet, "/api/v1/portfolio/b", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "B", decode[model.PortfolioItem](t, rr).Title)

		assert.Equal(t, http.StatusNotFound, f.request(http.MethodGet, "/api/v1/portfolio/zzz", "").Code)
	})

	t.Run("blog hides drafts", func(t *testing.T) {
		posts := decode[[]model.BlogPost](t, f.request(http.MethodGet, "/api/v1/blog", ""))
		require.Len(t, posts, 1)
		assert.Equal(t, "live", posts[0].Slug)

		assert.Equal(t, http.StatusOK, f.request(http.MethodGet, "/api/v1/blog/live", "").Code)
		assert.Equal(t, http.StatusNotFound, f.request(http.MethodGet, "/api/v1/blog/draft", "").Code)
	})

	t.Run("reference data", func(t *testing.T) {
		assert.Len(t, decode[[]model.Category](t, f.request(http.MethodGet, "/api/v1/categories", "")), 1)
		assert.Len(t, decode[[]model.Technology](t, f.request(http.MethodGet, "/api/v1/technologies", "")), 1)
	})
}

func TestPublicAgents(t *testing.T) {
	f := setup(t)
	active := &model.Agent{Name: "Guide", IsActive: true}
	hidden := &model.Agent{Name: "Hidden", IsActive: false}
	require.NoError(t, f.service.CreateAgent(active))
	require.NoError(t, f.service.CreateAgent(hidden))

	agents := decode[[]model.Agent](t, f.request(http.MethodGet, "/api/v1/agents", ""))
	require.Len(t, agents, 1)
	assert.Equal(t, active.ID, agents[0].ID)

	assert.Equal(t, http.StatusOK, f.request(http.MethodGet, "/api/v1/agents/"+active.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.request(http.MethodGet, "/api/v1/agents/"+hidden.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.request(http.MethodGet, "/api/v1/agents/unknown", "").Code)
}

func TestCreateMessage(t *testing.T) {
	f := setup(t)

	rr := f.request(http.MethodPost, "/api/v1/messages", `{"name":"Ann","email":"ann@example.com","body":"Hello","is_read":true}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	messages, err := f.service.ListMessages(true)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].IsRead)

	assert.Equal(t, http.StatusBadRequest, f.request(http.MethodPost, "/api/v1/messages", `{"name":"Ann","email":"nope","body":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.request(http.MethodPost, "/api/v1/messages", `{"name":"Ann"`).Code)
}

func TestVerifyKey(t *testing.T) {
	f := setup(t)

	// Verification works from any origin.
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/keys/verify", nil)
	req.Header.Set("Authorization", "Bearer "+siteKey)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[struct {
		Valid   bool     `json:"valid"`
		Name    string   `json:"name"`
		Domains []string `json:"domains"`
	}](t, rr)
	assert.True(t, body.Valid)
	assert.Equal(t, "portfolio", body.Name)
	assert.ElementsMatch(t, []string{"*.portfolio.dev", "localhost"}, body.Domains)
}

func TestGuardChain(t *testing.T) {
	f := setup(t)

	cases := []struct {
		name   string
		auth   string
		origin string
		want   int
	}{
		{"missing header", "", siteOrigin, http.StatusUnauthorized},
		{"wrong scheme", "Token " + siteKey, siteOrigin, http.StatusUnauthorized},
		{"unknown key", "Bearer other", siteOrigin, http.StatusForbidden},
		{"wildcard subdomain", "Bearer " + siteKey, siteOrigin, http.StatusOK},
		{"wildcard apex", "Bearer " + siteKey, "https://portfolio.dev", http.StatusForbidden},
		{"exact localhost", "Bearer " + siteKey, "http://localhost:5173", http.StatusOK},
		{"foreign origin", "Bearer " + siteKey, "https://evil.dev", http.StatusForbidden},
		{"no origin", "Bearer " + siteKey, "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/api/v1/categories", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			f.router.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}

	// Five requests carried the valid key; each left exactly one record.
	f.recorder.Close()
	count, err := f.service.CountUsageLogs(f.key.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestListUsage(t *testing.T) {
	f := setup(t)
	start := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.service.CreateUsageLog(&model.UsageLog{
			APIKeyID: f.key.ID, Method: "GET", Endpoint: "/api/v1/blog", StatusCode: 200,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		}))
	}

	rr := f.request(http.MethodGet, "/api/v1/usage?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Total int64            `json:"total"`
		Logs  []model.UsageLog `json:"logs"`
	}](t, rr)
	assert.Equal(t, int64(3), body.Total)
	require.Len(t, body.Logs, 2)
	assert.True(t, body.Logs[0].CreatedAt.After(body.Logs[1].CreatedAt))

	assert.Equal(t, http.StatusBadRequest, f.request(http.MethodGet, "/api/v1/usage?limit=0", "").Code)
}
