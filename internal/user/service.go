package user

import (
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/rank"
	"github.com/tupt100/lexops/internal/utils"
	"gorm.io/gorm"
)

// CreateUser persists a new user and seeds their rank ledgers in the same
// transaction, so a seeding failure rolls the user back too.
func CreateUser(db *gorm.DB, u *models.User) (*models.User, error) {
	hash, err := utils.HashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return rank.NewReconciler(tx).SeedUserRanks(u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// AssignGroup moves a user to another group. When the group actually
// changes, rank reconciliation runs in the same transaction as the save;
// a reconciliation failure rolls the reassignment back.
func AssignGroup(db *gorm.DB, userID uint, groupID uint) error {
	var u models.User
	if err := db.First(&u, userID).Error; err != nil {
		return err
	}

	changed := u.GroupID == nil || *u.GroupID != groupID
	u.GroupID = &groupID

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		if changed && !u.IsStaff {
			return rank.NewReconciler(tx).RoleChanged(&u)
		}
		return nil
	})
}

func ListUsers(companyID uint) ([]models.User, error) {
	var users []models.User
	if err := database.DB.Preload("Group").Where("company_id = ?", companyID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
