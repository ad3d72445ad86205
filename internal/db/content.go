package db

import (
	"fmt"
	"time"

	"github.com/ubuygold/folioapi/internal/model"
)

type PortfolioStore interface {
	ListPortfolioItems(featuredOnly bool) ([]model.PortfolioItem, error)
	GetPortfolioItem(id uint) (*model.PortfolioItem, error)
	GetPortfolioItemBySlug(slug string) (*model.PortfolioItem, error)
	CreatePortfolioItem(item *model.PortfolioItem) error
	UpdatePortfolioItem(item *model.PortfolioItem) error
	DeletePortfolioItem(id uint) error
}

type BlogStore interface {
	ListBlogPosts(publishedOnly bool) ([]model.BlogPost, error)
	GetBlogPost(id uint) (*model.BlogPost, error)
	GetPublishedBlogPostBySlug(slug string) (*model.BlogPost, error)
	CreateBlogPost(post *model.BlogPost) error
	UpdateBlogPost(post *model.BlogPost) error
	DeleteBlogPost(id uint) error
}

type MessageStore interface {
	ListMessages(unreadOnly bool) ([]model.Message, error)
	GetMessage(id uint) (*model.Message, error)
	CreateMessage(msg *model.Message) error
	MarkMessageRead(id uint) (*model.Message, error)
	DeleteMessage(id uint) error
}

type AgentStore interface {
	ListAgents(activeOnly bool) ([]model.Agent, error)
	GetAgent(id string) (*model.Agent, error)
	CreateAgent(agent *model.Agent) error
	UpdateAgent(agent *model.Agent) error
	DeleteAgent(id string) error
}

// ListPortfolioItems returns items in display order, optionally only featured ones.
func (s *gormService) ListPortfolioItems(featuredOnly bool) ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	query := s.db.Model(&model.PortfolioItem{})
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	if err := query.Order("sort_order asc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	return items, nil
}

func (s *gormService) GetPortfolioItem(id uint) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get portfolio item %d: %w", id, err)
	}
	return &item, nil
}

func (s *gormService) GetPortfolioItemBySlug(slug string) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	if err := s.db.Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to get portfolio item %q: %w", slug, err)
	}
	return &item, nil
}

func (s *gormService) CreatePortfolioItem(item *model.PortfolioItem) error {
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return nil
}

func (s *gormService) UpdatePortfolioItem(item *model.PortfolioItem) error {
	if err := updateRecord(s.db, item); err != nil {
		return fmt.Errorf("failed to update portfolio item %d: %w", item.ID, err)
	}
	return nil
}

func (s *gormService) DeletePortfolioItem(id uint) error {
	if err := deleteByID[model.PortfolioItem](s.db, id); err != nil {
		return fmt.Errorf("failed to delete portfolio item %d: %w", id, err)
	}
	return nil
}

// ListBlogPosts returns posts newest first. The public API only sees published posts.
func (s *gormService) ListBlogPosts(publishedOnly bool) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	query := s.db.Model(&model.BlogPost{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Order("published_at desc").Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *gormService) GetBlogPost(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get blog post %d: %w", id, err)
	}
	return &post, nil
}

func (s *gormService) GetPublishedBlogPostBySlug(slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := s.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to get blog post %q: %w", slug, err)
	}
	return &post, nil
}

func (s *gormService) CreateBlogPost(post *model.BlogPost) error {
	post.StampPublished(time.Now())
	if err := s.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

func (s *gormService) UpdateBlogPost(post *model.BlogPost) error {
	post.StampPublished(time.Now())
	if err := updateRecord(s.db, post); err != nil {
		return fmt.Errorf("failed to update blog post %d: %w", post.ID, err)
	}
	return nil
}

func (s *gormService) DeleteBlogPost(id uint) error {
	if err := deleteByID[model.BlogPost](s.db, id); err != nil {
		return fmt.Errorf("failed to delete blog post %d: %w", id, err)
	}
	return nil
}

func (s *gormService) ListMessages(unreadOnly bool) ([]model.Message, error) {
	var msgs []model.Message
	query := s.db.Model(&model.Message{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Order("created_at desc").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (s *gormService) GetMessage(id uint) (*model.Message, error) {
	var msg model.Message
	if err := s.db.First(&msg, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get message %d: %w", id, err)
	}
	return &msg, nil
}

func (s *gormService) CreateMessage(msg *model.Message) error {
	msg.IsRead = false
	if err := s.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// MarkMessageRead flags a message as read and returns the updated row.
func (s *gormService) MarkMessageRead(id uint) (*model.Message, error) {
	result := s.db.Model(&model.Message{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark message %d read: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to mark message %d read: %w", id, ErrNotFound)
	}
	return s.GetMessage(id)
}

func (s *gormService) DeleteMessage(id uint) error {
	if err := deleteByID[model.Message](s.db, id); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	return nil
}

func (s *gormService) ListAgents(activeOnly bool) ([]model.Agent, error) {
	var agents []model.Agent
	query := s.db.Model(&model.Agent{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

func (s *gormService) GetAgent(id string) (*model.Agent, error) {
	var agent model.Agent
	if err := s.db.Where("id = ?", id).First(&agent).Error; err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", id, err)
	}
	return &agent, nil
}

func (s *gormService) CreateAgent(agent *model.Agent) error {
	if err := s.db.Create(agent).Error; err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (s *gormService) UpdateAgent(agent *model.Agent) error {
	if agent.ID == "" {
		return fmt.Errorf("failed to update agent: %w", ErrNotFound)
	}
	if err := updateRecord(s.db, agent); err != nil {
		return fmt.Errorf("failed to update agent %s: %w", agent.ID, err)
	}
	return nil
}

func (s *gormService) DeleteAgent(id string) error {
	if err := deleteByID[model.Agent](s.db, id); err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", id, err)
	}
	return nil
}
