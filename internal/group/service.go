package group

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"gorm.io/gorm"
)

func CreateGroup(db *gorm.DB, g *models.Group) (*models.Group, error) {
	if err := db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func ListGroups(db *gorm.DB, companyID uint) ([]models.Group, error) {
	var groups []models.Group
	err := db.Where("company_id = ? OR company_id IS NULL", companyID).Find(&groups).Error
	return groups, err
}

func DeleteGroup(db *gorm.DB, groupID uint) error {
	var g models.Group
	if err := db.First(&g, groupID).Error; err != nil {
		return err
	}
	if !g.CanBeDeleted {
		return fmt.Errorf("group %q cannot be deleted", g.Name)
	}

	var members int64
	if err := db.Model(&models.User{}).Where("group_id = ?", groupID).Count(&members).Error; err != nil {
		return err
	}
	if members > 0 {
		return fmt.Errorf("group %q still has %d members", g.Name, members)
	}

	return db.Delete(&g).Error
}
