package models

import (
	"time"

	"gorm.io/gorm"
)

// Permission is a catalog row. Slug encodes category and action, e.g.
// "task_task-view-all" or "project_view-archived".
type Permission struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100" json:"name"`
	Slug      string         `gorm:"size:100;uniqueIndex" json:"slug"`
	Category  Category       `gorm:"size:30;index" json:"category"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PermissionGrant binds a permission to a (group, company) pair. Grants are
// replaced wholesale on permission-manager updates, never mutated in place,
// so rows are hard-deleted to keep the unique triple index usable.
type PermissionGrant struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	GroupID       uint        `gorm:"index:idx_grant_group_perm_company,unique" json:"group_id"`
	Group         *Group      `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	PermissionID  uint        `gorm:"index:idx_grant_group_perm_company,unique" json:"permission_id"`
	Permission    *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
	CompanyID     uint        `gorm:"index:idx_grant_group_perm_company,unique" json:"company_id"`
	HasPermission bool        `gorm:"default:false" json:"has_permission"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DefaultPermission is the global template copied into PermissionGrant rows
// when a new company is bootstrapped.
type DefaultPermission struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PermissionID  uint           `gorm:"uniqueIndex" json:"permission_id"`
	Permission    *Permission    `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
	HasPermission bool           `gorm:"default:false" json:"has_permission"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
