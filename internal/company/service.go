package company

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"gorm.io/gorm"
)

// Bootstrap creates a company with its two built-in groups and copies the
// global default-permission template into grants for both.
func Bootstrap(db *gorm.DB, name, address string) (*models.Company, error) {
	var company models.Company

	err := db.Transaction(func(tx *gorm.DB) error {
		company = models.Company{Name: name, Address: address, IsActive: true}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		adminGroup := models.Group{
			Name:           "Company Admin",
			CompanyID:      &company.ID,
			IsCompanyAdmin: true,
			CanBeDeleted:   false,
		}
		if err := tx.Create(&adminGroup).Error; err != nil {
			return err
		}

		memberGroup := models.Group{
			Name:         "Member",
			CompanyID:    &company.ID,
			CanBeDeleted: false,
		}
		if err := tx.Create(&memberGroup).Error; err != nil {
			return err
		}

		if err := permission.ApplyDefaultGrants(tx, adminGroup.ID, company.ID, true); err != nil {
			return err
		}
		return permission.ApplyDefaultGrants(tx, memberGroup.ID, company.ID, false)
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Invite records a pending invitation for an email address into a group of
// the company. The email send itself is queued by the caller.
func Invite(db *gorm.DB, companyID, groupID, invitedBy uint, email string) (*models.Invitation, error) {
	var g models.Group
	if err := db.First(&g, groupID).Error; err != nil {
		return nil, fmt.Errorf("group not found")
	}
	if g.CompanyID != nil && *g.CompanyID != companyID {
		return nil, fmt.Errorf("group belongs to another company")
	}

	var existing models.Invitation
	err := db.Where("email = ? AND company_id = ? AND status = ?", email, companyID, models.InvitationPending).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("invitation already pending for %s", email)
	}

	inv := models.Invitation{
		Token:     uuid.NewString(),
		Email:     email,
		CompanyID: companyID,
		GroupID:   groupID,
		InvitedBy: invitedBy,
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := db.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ClaimInvitation validates a token and marks it accepted, returning the
// invitation so the caller can provision the user.
func ClaimInvitation(db *gorm.DB, token string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := db.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, fmt.Errorf("invitation not found")
	}
	if inv.Status != models.InvitationPending {
		return nil, fmt.Errorf("invitation already %s", inv.Status)
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, fmt.Errorf("invitation expired")
	}

	inv.Status = models.InvitationAccepted
	if err := db.Save(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
