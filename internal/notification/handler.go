package notification

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/response"
	"gorm.io/gorm"
)

func ListNotificationsHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	unreadOnly := c.QueryBool("unread")

	notifications, err := ListForUser(database.DB, userID, unreadOnly)
	if err != nil {
		return response.InternalError(c, "Failed to fetch notifications")
	}

	return response.Success(c, notifications, "Notifications retrieved successfully")
}

func MarkReadHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID", nil)
	}

	userID := c.Locals("user_id").(uint)

	if err := MarkRead(database.DB, userID, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Notification")
		}
		return response.InternalError(c, "Failed to update notification")
	}

	return response.Success(c, nil, "Notification marked as read")
}
