package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	IsStaff   bool           `gorm:"default:false" json:"is_staff"`
	CompanyID *uint          `gorm:"index" json:"company_id,omitempty"`
	Company   *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	GroupID   *uint          `gorm:"index" json:"group_id,omitempty"`
	Group     *Group         `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"group,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
