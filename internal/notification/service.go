package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/tupt100/lexops/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Redis is the publish connection for notification fan-out, set during
// startup. Delivery to sockets happens elsewhere; we only publish. A nil
// client skips the publish, never the database row.
var Redis *redis.Client

// ChannelFor names the per-user pub/sub channel.
func ChannelFor(userID uint) string {
	return fmt.Sprintf("user:%d:notifications", userID)
}

// Create stores a notification row and publishes it on the user's channel.
// Publish failures are logged; the stored row is the source of truth.
func Create(db *gorm.DB, userID uint, notifType, title string, data map[string]interface{}) (*models.Notification, error) {
	n := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		n.Data = datatypes.JSON(raw)
	}

	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}

	if Redis != nil {
		payload, _ := json.Marshal(n)
		if err := Redis.Publish(context.Background(), ChannelFor(userID), payload).Err(); err != nil {
			log.Printf("⚠️  Failed to publish notification %d: %v", n.ID, err)
		}
	}

	return &n, nil
}

func ListForUser(db *gorm.DB, userID uint, unreadOnly bool) ([]models.Notification, error) {
	q := db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func MarkRead(db *gorm.DB, userID, notificationID uint) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
