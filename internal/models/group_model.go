package models

import (
	"time"

	"gorm.io/gorm"
)

// Group is a role a user holds inside a company. A nil CompanyID marks a
// public template group shared across companies.
type Group struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;index" json:"name"`
	CompanyID      *uint          `gorm:"index" json:"company_id,omitempty"`
	Company        *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	IsCompanyAdmin bool           `gorm:"default:false" json:"is_company_admin"`
	IsUserSpecific bool           `gorm:"default:false" json:"is_user_specific"`
	CanBeDeleted   bool           `gorm:"default:true" json:"can_be_deleted"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
