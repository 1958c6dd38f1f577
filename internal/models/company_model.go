package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;uniqueIndex" json:"name"`
	Address   string         `gorm:"size:255" json:"address,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

type Invitation struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Token     string           `gorm:"size:64;uniqueIndex" json:"-"`
	Email     string           `gorm:"size:100;index" json:"email"`
	CompanyID uint             `json:"company_id"`
	Company   *Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	GroupID   uint             `json:"group_id"`
	Group     *Group           `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	InvitedBy uint             `json:"invited_by"`
	Status    InvitationStatus `gorm:"size:20;default:'pending'" json:"status"`
	ExpiresAt time.Time        `json:"expires_at"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
