package workflow

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/rank"
	"gorm.io/gorm"
)

func CreateWorkflow(db *gorm.DB, w *models.Workflow) (*models.Workflow, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		return rank.NewReconciler(tx).ItemCreated(models.CategoryWorkflow, w.ID)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListVisibleWorkflows returns workflows in the user's personal rank order.
func ListVisibleWorkflows(db *gorm.DB, user *models.User) ([]models.Workflow, error) {
	ordered, err := rank.OrderedVisibleIDs(db, user, rank.WorkflowAdapter{})
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return []models.Workflow{}, nil
	}

	var workflows []models.Workflow
	if err := db.Preload("Owner").Where("id IN ?", ordered).Find(&workflows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Workflow, len(workflows))
	for _, w := range workflows {
		byID[w.ID] = w
	}
	out := make([]models.Workflow, 0, len(ordered))
	for _, id := range ordered {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func ChangeStatus(db *gorm.DB, workflowID uint, status int) (*models.Workflow, error) {
	if status < models.WorkflowStatusActive || status > models.WorkflowStatusArchived {
		return nil, fmt.Errorf("invalid workflow status %d", status)
	}

	var w models.Workflow
	if err := db.First(&w, workflowID).Error; err != nil {
		return nil, err
	}

	w.Status = status
	if err := db.Save(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}
