package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioItem is a showcased project.
type PortfolioItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title" binding:"required"`
	Slug         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" binding:"required"`
	Description  string    `gorm:"type:text" json:"description"`
	Content      string    `gorm:"type:text" json:"content"`
	ImageURL     string    `gorm:"type:varchar(1024)" json:"image_url"`
	ProjectURL   string    `gorm:"type:varchar(1024)" json:"project_url"`
	RepoURL      string    `gorm:"type:varchar(1024)" json:"repo_url"`
	CategoryID   *uint     `gorm:"index" json:"category_id"`
	Technologies string    `gorm:"type:varchar(1024)" json:"technologies"`
	Featured     bool      `gorm:"default:false;not null;index" json:"featured"`
	SortOrder    int       `gorm:"default:0;not null" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BlogPost is an article. Only published posts are visible on the public API.
type BlogPost struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title" binding:"required"`
	Slug          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" binding:"required"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text" json:"content"`
	CoverImageURL string     `gorm:"type:varchar(1024)" json:"cover_image_url"`
	CategoryID    *uint      `gorm:"index" json:"category_id"`
	Published     bool       `gorm:"default:false;not null;index" json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StampPublished sets PublishedAt the first time a post is published.
func (p *BlogPost) StampPublished(now time.Time) {
	if p.Published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

// Message is a contact-form submission.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" binding:"required"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email" binding:"required,email"`
	Subject   string    `gorm:"type:varchar(255)" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body" binding:"required"`
	IsRead    bool      `gorm:"default:false;not null;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Agent is a configured assistant persona exposed on the site.
type Agent struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" binding:"required"`
	Description  string    `gorm:"type:text" json:"description"`
	Model        string    `gorm:"type:varchar(128)" json:"model"`
	SystemPrompt string    `gorm:"type:text" json:"system_prompt"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not pick an id.
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
