package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectStatusActive    = 1
	ProjectStatusCompleted = 2
	ProjectStatusArchived  = 3
)

type Project struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"size:255" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	Status           int            `gorm:"default:1;index" json:"status"`
	OrganizationID   uint           `gorm:"index" json:"organization_id"`
	Organization     *Company       `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	OwnerID          *uint          `gorm:"index" json:"owner_id,omitempty"`
	Owner            *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedByID      uint           `gorm:"index" json:"created_by_id"`
	CreatedBy        *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedToUsers  []User         `gorm:"many2many:project_assigned_users" json:"assigned_to_users,omitempty"`
	AssignedToGroups []Group        `gorm:"many2many:project_assigned_groups" json:"assigned_to_groups,omitempty"`
	DueDate          *time.Time     `json:"due_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
