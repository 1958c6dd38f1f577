package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusNew        = 1
	TaskStatusInProgress = 2
	TaskStatusCompleted  = 3
	TaskStatusArchived   = 4
)

type Task struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"size:255" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Status            int            `gorm:"default:1;index" json:"status"`
	IsPrivate         bool           `gorm:"default:false" json:"is_private"`
	OrganizationID    uint           `gorm:"index" json:"organization_id"`
	Organization      *Company       `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	AssignedToID      *uint          `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo        *User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedToGroupID *uint          `gorm:"index" json:"assigned_to_group_id,omitempty"`
	AssignedToGroup   *Group         `gorm:"foreignKey:AssignedToGroupID" json:"assigned_to_group,omitempty"`
	CreatedByID       uint           `gorm:"index" json:"created_by_id"`
	CreatedBy         *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	DueDate           *time.Time     `json:"due_date,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
