package db

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ubuygold/folioapi/internal/model"
	"gorm.io/gorm"
)

// KeyPrefix starts every generated API key.
const KeyPrefix = "fk_"

type APIKeyStore interface {
	ListAPIKeys() ([]model.APIKey, error)
	GetAPIKey(id uint) (*model.APIKey, error)
	FindActiveAPIKey(key string) (*model.APIKey, error)
	CreateAPIKey(key *model.APIKey) error
	UpdateAPIKey(key *model.APIKey) error
	DeleteAPIKey(id uint) error
	TouchAPIKey(id uint, at time.Time) error
}

type IntegrationStore interface {
	ListIntegrations(apiKeyID uint) ([]model.Integration, error)
	GetIntegration(id uint) (*model.Integration, error)
	CreateIntegration(integration *model.Integration) error
	UpdateIntegration(integration *model.Integration) error
	DeleteIntegration(id uint) error
}

type UsageStore interface {
	CreateUsageLog(entry *model.UsageLog) error
	ListUsageLogs(apiKeyID uint, limit int) ([]model.UsageLog, error)
	CountUsageLogs(apiKeyID uint) (int64, error)
	DeleteUsageLogsBefore(cutoff time.Time) (int64, error)
}

// GenerateKey returns a new random API key string.
func GenerateKey() string {
	a, b := uuid.New(), uuid.New()
	return KeyPrefix + hex.EncodeToString(a[:]) + hex.EncodeToString(b[:8])
}

func (s *gormService) ListAPIKeys() ([]model.APIKey, error) {
	var keys []model.APIKey
	if err := s.db.Preload("Integrations").Order("id asc").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	return keys, nil
}

func (s *gormService) GetAPIKey(id uint) (*model.APIKey, error) {
	var key model.APIKey
	if err := s.db.Preload("Integrations").First(&key, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get api key %d: %w", id, err)
	}
	return &key, nil
}

// FindActiveAPIKey looks up an enabled key by its token.
func (s *gormService) FindActiveAPIKey(token string) (*model.APIKey, error) {
	if token == "" {
		return nil, fmt.Errorf("failed to find active api key: %w", ErrNotFound)
	}
	var key model.APIKey
	err := s.db.Where(&model.APIKey{Key: token, IsActive: true}).First(&key).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active api key: %w", err)
	}
	return &key, nil
}

// CreateAPIKey stores a new key, generating the token when the caller left it empty.
func (s *gormService) CreateAPIKey(key *model.APIKey) error {
	if key.Key == "" {
		key.Key = GenerateKey()
	}
	if err := s.db.Omit("Integrations").Create(key).Error; err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

func (s *gormService) UpdateAPIKey(key *model.APIKey) error {
	if err := updateRecord(s.db, key); err != nil {
		return fmt.Errorf("failed to update api key %d: %w", key.ID, err)
	}
	return nil
}

// DeleteAPIKey removes a key together with its integrations.
func (s *gormService) DeleteAPIKey(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("api_key_id = ?", id).Delete(&model.Integration{}).Error; err != nil {
			return err
		}
		return deleteByID[model.APIKey](tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete api key %d: %w", id, err)
	}
	return nil
}

// TouchAPIKey records when a key was last used. A missing key is not an error.
func (s *gormService) TouchAPIKey(id uint, at time.Time) error {
	result := s.db.Model(&model.APIKey{}).Where("id = ?", id).UpdateColumn("last_used_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to touch api key %d: %w", id, result.Error)
	}
	return nil
}

func (s *gormService) ListIntegrations(apiKeyID uint) ([]model.Integration, error) {
	var integrations []model.Integration
	if err := s.db.Where("api_key_id = ?", apiKeyID).Order("id asc").Find(&integrations).Error; err != nil {
		return nil, fmt.Errorf("failed to list integrations for api key %d: %w", apiKeyID, err)
	}
	return integrations, nil
}

func (s *gormService) GetIntegration(id uint) (*model.Integration, error) {
	var integration model.Integration
	if err := s.db.First(&integration, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get integration %d: %w", id, err)
	}
	return &integration, nil
}

func (s *gormService) CreateIntegration(integration *model.Integration) error {
	integration.Domain = strings.ToLower(strings.TrimSpace(integration.Domain))
	if err := s.db.Create(integration).Error; err != nil {
		return fmt.Errorf("failed to create integration: %w", err)
	}
	return nil
}

func (s *gormService) UpdateIntegration(integration *model.Integration) error {
	integration.Domain = strings.ToLower(strings.TrimSpace(integration.Domain))
	if err := updateRecord(s.db, integration); err != nil {
		return fmt.Errorf("failed to update integration %d: %w", integration.ID, err)
	}
	return nil
}

func (s *gormService) DeleteIntegration(id uint) error {
	if err := deleteByID[model.Integration](s.db, id); err != nil {
		return fmt.Errorf("failed to delete integration %d: %w", id, err)
	}
	return nil
}

func (s *gormService) CreateUsageLog(entry *model.UsageLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create usage log: %w", err)
	}
	return nil
}

// ListUsageLogs returns the most recent usage of a key, newest first.
func (s *gormService) ListUsageLogs(apiKeyID uint, limit int) ([]model.UsageLog, error) {
	var logs []model.UsageLog
	query := s.db.Where("api_key_id = ?", apiKeyID).Order("created_at desc").Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list usage logs for api key %d: %w", apiKeyID, err)
	}
	return logs, nil
}

func (s *gormService) CountUsageLogs(apiKeyID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&model.UsageLog{}).Where("api_key_id = ?", apiKeyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count usage logs for api key %d: %w", apiKeyID, err)
	}
	return count, nil
}

// DeleteUsageLogsBefore prunes usage logs older than cutoff and reports how many were removed.
func (s *gormService) DeleteUsageLogsBefore(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff).Delete(&model.UsageLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune usage logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
