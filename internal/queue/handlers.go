package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/notification"
)

// NewMux wires every task handler. Handlers run at-least-once and are
// independent of the write that enqueued them.
func NewMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeInvitationEmail, HandleInvitationEmail)
	mux.HandleFunc(TypeNotificationPush, HandleNotificationPush)
	return mux
}

func HandleInvitationEmail(ctx context.Context, t *asynq.Task) error {
	var payload InvitationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	var inv models.Invitation
	if err := database.DB.Preload("Company").Preload("Group").First(&inv, payload.InvitationID).Error; err != nil {
		return fmt.Errorf("invitation %d not found: %w", payload.InvitationID, err)
	}

	if inv.Status != models.InvitationPending {
		log.Printf("⏭️  Invitation %d is %s, skipping email", inv.ID, inv.Status)
		return nil
	}

	// Template rendering and SMTP transport live outside this service.
	log.Printf("📧 Invitation email queued for %s (company %d, group %d)",
		inv.Email, inv.CompanyID, inv.GroupID)
	return nil
}

func HandleNotificationPush(ctx context.Context, t *asynq.Task) error {
	var payload NotificationPushPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	_, err := notification.Create(database.DB, payload.UserID, payload.Type, payload.Title, payload.Data)
	return err
}
