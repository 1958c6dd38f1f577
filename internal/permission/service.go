package permission

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"gorm.io/gorm"
)

var categories = []models.Category{
	models.CategoryTask,
	models.CategoryProject,
	models.CategoryWorkflow,
}

var actions = []string{
	ActionCreate,
	ActionView,
	ActionViewAll,
	ActionViewArchived,
	ActionUpdate,
	ActionDelete,
}

// defaultGranted marks actions a non-admin group receives when a company is
// bootstrapped from the global template.
var defaultGranted = map[string]bool{
	ActionCreate: true,
	ActionView:   true,
	ActionUpdate: true,
}

// SeedCatalog creates the permission catalog and the global default
// template. Safe to run repeatedly.
func SeedCatalog(db *gorm.DB) error {
	for _, cat := range categories {
		for _, action := range actions {
			slug := Slug(cat, action)

			var perm models.Permission
			err := db.Where("slug = ?", slug).First(&perm).Error
			if err == gorm.ErrRecordNotFound {
				perm = models.Permission{
					Name:     fmt.Sprintf("%s %s", cat, action),
					Slug:     slug,
					Category: cat,
				}
				if err := db.Create(&perm).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			var tmpl models.DefaultPermission
			err = db.Where("permission_id = ?", perm.ID).First(&tmpl).Error
			if err == gorm.ErrRecordNotFound {
				tmpl = models.DefaultPermission{
					PermissionID:  perm.ID,
					HasPermission: defaultGranted[action],
				}
				if err := db.Create(&tmpl).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyDefaultGrants copies the global template into grants for one group of
// a newly bootstrapped company. Admin groups are granted everything.
func ApplyDefaultGrants(db *gorm.DB, groupID, companyID uint, isAdmin bool) error {
	var templates []models.DefaultPermission
	if err := db.Find(&templates).Error; err != nil {
		return err
	}

	for _, tmpl := range templates {
		grant := models.PermissionGrant{
			GroupID:       groupID,
			PermissionID:  tmpl.PermissionID,
			CompanyID:     companyID,
			HasPermission: isAdmin || tmpl.HasPermission,
		}
		if err := db.Create(&grant).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceGroupGrants drops every grant the group holds in the company and
// recreates rows for the listed permission ids. The caller is responsible
// for re-running rank reconciliation for the group's members afterwards.
func ReplaceGroupGrants(db *gorm.DB, groupID, companyID uint, permissionIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND company_id = ?", groupID, companyID).
			Delete(&models.PermissionGrant{}).Error; err != nil {
			return err
		}

		for _, pid := range permissionIDs {
			var perm models.Permission
			if err := tx.First(&perm, pid).Error; err != nil {
				return fmt.Errorf("permission %d not found", pid)
			}
			grant := models.PermissionGrant{
				GroupID:       groupID,
				PermissionID:  pid,
				CompanyID:     companyID,
				HasPermission: true,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListCatalog returns the full permission catalog grouped by category.
func ListCatalog(db *gorm.DB) ([]models.Permission, error) {
	var perms []models.Permission
	err := db.Order("category, slug").Find(&perms).Error
	return perms, err
}
