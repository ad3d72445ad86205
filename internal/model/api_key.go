package model

import (
	"time"
)

// APIKey represents a client's API key for accessing the public API.
type APIKey struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Key          string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"key"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name" binding:"required"`
	IsActive     bool          `gorm:"not null;index" json:"is_active"`
	LastUsedAt   *time.Time    `json:"last_used_at,omitempty"`
	Integrations []Integration `gorm:"constraint:OnDelete:CASCADE" json:"integrations,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Integration registers a browser domain allowed to use its API key.
// Domain is either an exact hostname or a wildcard of the form "*.example.com".
type Integration struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	APIKeyID  uint      `gorm:"index;not null" json:"api_key_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Domain    string    `gorm:"type:varchar(255);not null" json:"domain" binding:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxEndpointLength is the width of the usage_logs.endpoint column.
const MaxEndpointLength = 2048

// UsageLog is one completed request made with an API key.
type UsageLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	APIKeyID     uint      `gorm:"index;not null" json:"api_key_id"`
	Method       string    `gorm:"type:varchar(16);not null" json:"method"`
	Endpoint     string    `gorm:"type:varchar(2048);not null" json:"endpoint"`
	StatusCode   int       `gorm:"not null" json:"status_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	ClientIP     string    `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
