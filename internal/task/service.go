package task

import (
	"fmt"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/queue"
	"github.com/tupt100/lexops/internal/rank"
	"gorm.io/gorm"
)

// CreateTask persists a task and appends a rank entry for every user who
// can see it, in one transaction. The assignee is notified off the request
// path.
func CreateTask(db *gorm.DB, t *models.Task) (*models.Task, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return rank.NewReconciler(tx).ItemCreated(models.CategoryTask, t.ID)
	})
	if err != nil {
		return nil, err
	}

	if t.AssignedToID != nil {
		queue.EnqueueNotificationPush(queue.NotificationPushPayload{
			UserID: *t.AssignedToID,
			Type:   "task_assigned",
			Title:  fmt.Sprintf("You were assigned: %s", t.Title),
			Data:   map[string]interface{}{"task_id": t.ID},
		})
	}
	return t, nil
}

// ListVisibleTasks returns the user's tasks in their personal rank order.
// Terminal tasks ride along at the end only under a view-archived grant.
func ListVisibleTasks(db *gorm.DB, user *models.User) ([]models.Task, error) {
	ordered, err := rank.OrderedVisibleIDs(db, user, rank.TaskAdapter{})
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := db.Preload("AssignedTo").Where("id IN ?", ordered).Find(&tasks).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	out := make([]models.Task, 0, len(ordered))
	for _, id := range ordered {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// ChangeStatus updates a task's lifecycle status. Status changes do not
// trigger rank reconciliation; a completed task keeps its rank until the
// next role or permission event recomputes visibility.
func ChangeStatus(db *gorm.DB, taskID uint, status int) (*models.Task, error) {
	if status < models.TaskStatusNew || status > models.TaskStatusArchived {
		return nil, fmt.Errorf("invalid task status %d", status)
	}

	var t models.Task
	if err := db.First(&t, taskID).Error; err != nil {
		return nil, err
	}

	t.Status = status
	if err := db.Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
