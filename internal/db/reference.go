package db

import (
	"fmt"

	"github.com/ubuygold/folioapi/internal/model"
)

type ReferenceStore interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error

	ListTechnologies() ([]model.Technology, error)
	GetTechnology(id uint) (*model.Technology, error)
	CreateTechnology(tech *model.Technology) error
	UpdateTechnology(tech *model.Technology) error
	DeleteTechnology(id uint) error
}

type UserStore interface {
	ListUsers() ([]model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	CreateUser(user *model.User) error
	DeleteUser(id uint) error
}

func (s *gormService) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *gormService) GetCategory(id uint) (*model.Category, error) {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

func (s *gormService) CreateCategory(category *model.Category) error {
	if err := s.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *gormService) UpdateCategory(category *model.Category) error {
	if err := updateRecord(s.db, category); err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	return nil
}

func (s *gormService) DeleteCategory(id uint) error {
	if err := deleteByID[model.Category](s.db, id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

func (s *gormService) ListTechnologies() ([]model.Technology, error) {
	var techs []model.Technology
	if err := s.db.Order("name asc").Find(&techs).Error; err != nil {
		return nil, fmt.Errorf("failed to list technologies: %w", err)
	}
	return techs, nil
}

func (s *gormService) GetTechnology(id uint) (*model.Technology, error) {
	var tech model.Technology
	if err := s.db.First(&tech, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get technology %d: %w", id, err)
	}
	return &tech, nil
}

func (s *gormService) CreateTechnology(tech *model.Technology) error {
	if err := s.db.Create(tech).Error; err != nil {
		return fmt.Errorf("failed to create technology: %w", err)
	}
	return nil
}

func (s *gormService) UpdateTechnology(tech *model.Technology) error {
	if err := updateRecord(s.db, tech); err != nil {
		return fmt.Errorf("failed to update technology %d: %w", tech.ID, err)
	}
	return nil
}

func (s *gormService) DeleteTechnology(id uint) error {
	if err := deleteByID[model.Technology](s.db, id); err != nil {
		return fmt.Errorf("failed to delete technology %d: %w", id, err)
	}
	return nil
}

func (s *gormService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("username asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *gormService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return &user, nil
}

func (s *gormService) CreateUser(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormService) DeleteUser(id uint) error {
	if err := deleteByID[model.User](s.db, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
