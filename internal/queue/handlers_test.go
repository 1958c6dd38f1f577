package queue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/queue"
	"github.com/tupt100/lexops/internal/testutils"
)

func TestHandleNotificationPush(t *testing.T) {
	database.DB = testutils.TestDB(t)

	payload, err := json.Marshal(queue.NotificationPushPayload{
		UserID: 9,
		Type:   "task_assigned",
		Title:  "New task",
		Data:   map[string]interface{}{"task_id": 3},
	})
	assert.NoError(t, err)

	task := asynq.NewTask(queue.TypeNotificationPush, payload)
	assert.NoError(t, queue.HandleNotificationPush(context.Background(), task))

	var n models.Notification
	assert.NoError(t, database.DB.Where("user_id = ?", 9).First(&n).Error)
	assert.Equal(t, "New task", n.Title)

	t.Run("garbage payload errors", func(t *testing.T) {
		bad := asynq.NewTask(queue.TypeNotificationPush, []byte("{"))
		assert.Error(t, queue.HandleNotificationPush(context.Background(), bad))
	})
}

func TestHandleInvitationEmail(t *testing.T) {
	db := testutils.TestDB(t)
	database.DB = db

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	inv := models.Invitation{
		Token:     "tok-email-test",
		Email:     "invitee@acme.test",
		CompanyID: company.ID,
		GroupID:   1,
		Status:    models.InvitationPending,
	}
	assert.NoError(t, db.Create(&inv).Error)

	payload, _ := json.Marshal(queue.InvitationEmailPayload{InvitationID: inv.ID})
	task := asynq.NewTask(queue.TypeInvitationEmail, payload)
	assert.NoError(t, queue.HandleInvitationEmail(context.Background(), task))

	t.Run("accepted invitation is skipped without error", func(t *testing.T) {
		assert.NoError(t, db.Model(&inv).Update("status", models.InvitationAccepted).Error)
		assert.NoError(t, queue.HandleInvitationEmail(context.Background(), task))
	})

	t.Run("missing invitation errors for retry", func(t *testing.T) {
		gone, _ := json.Marshal(queue.InvitationEmailPayload{InvitationID: 9999})
		assert.Error(t, queue.HandleInvitationEmail(context.Background(),
			asynq.NewTask(queue.TypeInvitationEmail, gone)))
	})
}

func TestEnqueueWithoutClientIsNoOp(t *testing.T) {
	queue.C = nil
	// Must not panic or error when no worker infrastructure exists.
	queue.EnqueueInvitationEmail(queue.InvitationEmailPayload{InvitationID: 1})
	queue.EnqueueNotificationPush(queue.NotificationPushPayload{UserID: 1, Title: "x"})
}
