package project

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/queue"
	"github.com/tupt100/lexops/internal/rank"
	"gorm.io/gorm"
)

func CreateProject(db *gorm.DB, p *models.Project) (*models.Project, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return rank.NewReconciler(tx).ItemCreated(models.CategoryProject, p.ID)
	})
	if err != nil {
		return nil, err
	}

	if p.OwnerID != nil && *p.OwnerID != p.CreatedByID {
		queue.EnqueueNotificationPush(queue.NotificationPushPayload{
			UserID: *p.OwnerID,
			Type:   "project_owner",
			Title:  fmt.Sprintf("You now own project: %s", p.Name),
			Data:   map[string]interface{}{"project_id": p.ID},
		})
	}
	return p, nil
}

// AssignUsers replaces the project's assigned user set. Assignment moves
// view-mine visibility in both directions, so every user entering or
// leaving the set is reconciled: leavers lose their entry, joiners get one
// appended.
func AssignUsers(db *gorm.DB, projectID uint, userIDs []uint) error {
	var p models.Project
	if err := db.Preload("AssignedToUsers").First(&p, projectID).Error; err != nil {
		return err
	}

	affected := make(map[uint]bool, len(p.AssignedToUsers)+len(userIDs))
	for _, u := range p.AssignedToUsers {
		affected[u.ID] = true
	}
	for _, id := range userIDs {
		affected[id] = true
	}

	var users []models.User
	if len(userIDs) > 0 {
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return err
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&p).Association("AssignedToUsers").Replace(users); err != nil {
			return err
		}

		rec := rank.NewReconciler(tx)
		for id := range affected {
			var u models.User
			if err := tx.First(&u, id).Error; err != nil {
				continue
			}
			if u.IsStaff {
				continue
			}
			if err := rec.RoleChanged(&u); err != nil {
				return err
			}
		}
		return nil
	})
}

func ChangeStatus(db *gorm.DB, projectID uint, status int) (*models.Project, error) {
	if status < models.ProjectStatusActive || status > models.ProjectStatusArchived {
		return nil, fmt.Errorf("invalid project status %d", status)
	}

	var p models.Project
	if err := db.First(&p, projectID).Error; err != nil {
		return nil, err
	}

	p.Status = status
	if err := db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
