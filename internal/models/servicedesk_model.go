package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ServiceRequestOpen       = "open"
	ServiceRequestInProgress = "in_progress"
	ServiceRequestResolved   = "resolved"
	ServiceRequestClosed     = "closed"
)

// ServiceRequest is an externally submitted request. AccessKey lets the
// unauthenticated requester check status later.
type ServiceRequest struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	AccessKey      string         `gorm:"size:64;uniqueIndex" json:"-"`
	RequesterName  string         `gorm:"size:100" json:"requester_name"`
	RequesterEmail string         `gorm:"size:100;index" json:"requester_email"`
	Subject        string         `gorm:"size:255" json:"subject"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         string         `gorm:"size:20;default:'open';index" json:"status"`
	CompanyID      uint           `gorm:"index" json:"company_id"`
	Company        *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	AssignedToID   *uint          `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo     *User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Payload        datatypes.JSON `json:"payload,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
