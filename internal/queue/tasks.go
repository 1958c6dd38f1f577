package queue

// Task type names routed through the asynq mux.
const (
	TypeInvitationEmail  = "invitation:email"
	TypeNotificationPush = "notification:push"
)

type InvitationEmailPayload struct {
	InvitationID uint `json:"invitation_id"`
}

type NotificationPushPayload struct {
	UserID uint                   `json:"user_id"`
	Type   string                 `json:"type"`
	Title  string                 `json:"title"`
	Data   map[string]interface{} `json:"data,omitempty"`
}
