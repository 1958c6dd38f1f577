package permission

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"gorm.io/gorm"
)

const (
	ActionView         = "view"
	ActionViewAll      = "view-all"
	ActionViewArchived = "view-archived"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
)

// Slug builds the catalog slug for a category/action pair. The archived
// modifier uses a shorter form than the tiered view actions.
func Slug(category models.Category, action string) string {
	if action == ActionViewArchived {
		return fmt.Sprintf("%s_%s", category, ActionViewArchived)
	}
	return fmt.Sprintf("%s_%s-%s", category, category, action)
}

// HasPermission answers whether the group holds the given grant inside the
// company. A missing grant row is simply false, never an error.
func HasPermission(db *gorm.DB, groupID, companyID uint, category models.Category, action string) bool {
	var count int64
	db.Model(&models.PermissionGrant{}).
		Joins("JOIN permissions ON permissions.id = permission_grants.permission_id").
		Where("permission_grants.group_id = ? AND permission_grants.company_id = ?", groupID, companyID).
		Where("permissions.slug = ? AND permission_grants.has_permission = ?", Slug(category, action), true).
		Count(&count)
	return count > 0
}

// GroupGrants returns every grant currently held by a group in a company.
func GroupGrants(db *gorm.DB, groupID, companyID uint) ([]models.PermissionGrant, error) {
	var grants []models.PermissionGrant
	err := db.Preload("Permission").
		Where("group_id = ? AND company_id = ?", groupID, companyID).
		Find(&grants).Error
	return grants, err
}
