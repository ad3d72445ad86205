package model

import "time"

// Category groups portfolio items and blog posts.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" binding:"required"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Technology is an entry of the tech-stack lookup table.
type Technology struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" binding:"required"`
	IconURL   string    `gorm:"type:varchar(1024)" json:"icon_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
