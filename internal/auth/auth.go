package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

// APIKeyContextKey is where ValidateAPIKey stores the caller's *model.APIKey.
const APIKeyContextKey = "apiKey"

const bearerPrefix = "Bearer "

// KeyFinder resolves a bearer token to an active key.
type KeyFinder interface {
	FindActiveAPIKey(key string) (*model.APIKey, error)
}

// IntegrationLister returns the domains registered for a key.
type IntegrationLister interface {
	ListIntegrations(apiKeyID uint) ([]model.Integration, error)
}

// UserFinder looks up admin accounts.
type UserFinder interface {
	GetUserByUsername(username string) (*model.User, error)
}

// ValidateAPIKey rejects requests without a well-formed bearer token (401)
// or whose token is not an active key (403). On success the key is attached
// to the context under APIKeyContextKey.
func ValidateAPIKey(keys KeyFinder, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		apiKey, err := keys.FindActiveAPIKey(token)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or inactive API key"})
				return
			}
			log.Error("API key lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(APIKeyContextKey, apiKey)
		c.Next()
	}
}

// APIKeyFromContext returns the key attached by ValidateAPIKey, if any.
func APIKeyFromContext(c *gin.Context) (*model.APIKey, bool) {
	v, ok := c.Get(APIKeyContextKey)
	if !ok {
		return nil, false
	}
	key, ok := v.(*model.APIKey)
	return key, ok && key != nil
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// CheckDomain allows the request only when one of the key's integrations
// matches the hostname of the Origin (or, failing that, Referer) header.
// Admin routes and the key verification endpoint are never checked.
func CheckDomain(integrations IntegrationLister, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if SkipDomainCheck(c.Request.URL.Path) {
			c.Next()
			return
		}

		apiKey, ok := APIKeyFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Domain not allowed"})
			return
		}

		host := RequestHostname(c.Request)
		if host == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Domain not allowed"})
			return
		}

		list, err := integrations.ListIntegrations(apiKey.ID)
		if err != nil {
			log.Error("Integration lookup failed", "api_key_id", apiKey.ID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		for _, integration := range list {
			if MatchDomain(integration.Domain, host) {
				c.Next()
				return
			}
		}

		log.Debug("Domain rejected", "api_key_id", apiKey.ID, "host", host)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Domain not allowed"})
	}
}

// AdminAuthMiddleware guards the admin API with HTTP Basic auth. It accepts the
// configured password for user "admin", or any stored user whose password matches.
func AdminAuthMiddleware(users UserFinder, adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, password, hasAuth := c.Request.BasicAuth()
		if !hasAuth || !checkAdmin(users, adminPassword, user, password) {
			c.Header("WWW-Authenticate", `Basic realm="Restricted"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func checkAdmin(users UserFinder, adminPassword, user, password string) bool {
	if adminPassword != "" && user == "admin" &&
		subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1 {
		return true
	}
	if users == nil || user == "" {
		return false
	}
	stored, err := users.GetUserByUsername(user)
	if err != nil {
		return false
	}
	return stored.CheckPassword(password)
}
