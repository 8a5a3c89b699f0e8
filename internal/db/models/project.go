package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for project model
const (
	// ProjectPercentCompleteField is the field name for project percent complete
	ProjectPercentCompleteField = "percent_complete"
	// ProjectRoadblocksField is the field name for project roadblocks
	ProjectRoadblocksField = "roadblocks"
)

// ProjectStatus represents the current state of a project
type ProjectStatus string

// Project status constants
const (
	// ProjectStatusActive indicates the project is being worked on
	ProjectStatusActive ProjectStatus = "active"
	// ProjectStatusCompleted indicates all work on the project is done
	ProjectStatusCompleted ProjectStatus = "completed"
	// ProjectStatusArchived indicates the project was shelved
	ProjectStatusArchived ProjectStatus = "archived"
)

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus converts a string to a ProjectStatus type
func ParseProjectStatus(str string) (ProjectStatus, error) {
	switch str {
	case string(ProjectStatusActive):
		return ProjectStatusActive, nil
	case string(ProjectStatusCompleted):
		return ProjectStatusCompleted, nil
	case string(ProjectStatusArchived):
		return ProjectStatusArchived, nil
	default:
		return "", fmt.Errorf("invalid project status: %s", str)
	}
}

// Project is a unit of work containing a forest of tasks. PercentComplete
// is derived from the project's root tasks and is never authoritative on
// its own once root tasks exist.
type Project struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null;index"`
	Description     string         `json:"description" gorm:"type:text"`
	CategoryID      *uint          `json:"categoryId" gorm:"index"`
	Status          ProjectStatus  `json:"status" gorm:"not null;index"`
	PercentComplete int            `json:"percentComplete" gorm:"not null;default:0"`
	Roadblocks      string         `json:"roadblocks" gorm:"type:text"`
	AISuggestions   string         `json:"aiSuggestions" gorm:"type:text"`
	Tasks           []Task         `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.PercentComplete < 0 || p.PercentComplete > 100 {
		return fmt.Errorf("project percent complete must be between 0 and 100")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	return p.Validate()
}
