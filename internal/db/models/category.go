package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Category groups projects for display. It has no lifecycle coupling to
// tasks; projects reference it through an optional foreign key.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;index"`
	Color     string         `json:"color"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Validate ensures that the category data is valid
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new category
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	return c.Validate()
}
