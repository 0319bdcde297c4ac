package services

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"marketplace-server/models"
	"marketplace-server/storage"
	"marketplace-server/utils"

	"gorm.io/gorm"
)

// NotificationService persists notification records and pushes them to the
// recipient's devices. The database row is the contract: a failed insert fails
// the caller, while push delivery is best effort.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Create writes the notification row, then attempts push delivery.
func (ns *NotificationService) Create(notification *models.Notification) error {
	if err := storage.DB.Create(notification).Error; err != nil {
		return &StorageFault{Err: err}
	}
	ns.push(notification)
	return nil
}

func (ns *NotificationService) push(notification *models.Notification) {
	tokens, err := ns.recipientPushTokens(notification.RecipientID)
	if err != nil || len(tokens) == 0 {
		return
	}

	data := map[string]string{
		"type":         notification.Type,
		"relatedModel": notification.RelatedModel,
		"relatedId":    strconv.FormatUint(uint64(notification.RelatedID), 10),
	}
	for _, token := range tokens {
		if err := utils.SendPushNotification(token, notification.Title, notification.Message, data); err != nil {
			log.Printf("Failed to send push notification to token %s: %v", token, err)
		}
	}
}

// recipientPushTokens returns the registered tokens of a recipient who allows
// notifications, or nothing when they opted out or registered no device.
func (ns *NotificationService) recipientPushTokens(recipientID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, recipientID).Error; err != nil {
		return nil, err
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, nil
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ListForRecipient returns one page of a user's notifications, newest first,
// plus the pre-pagination total and how many are unread.
func (ns *NotificationService) ListForRecipient(recipientID uint, page, limit int) (notifications []models.Notification, total, unread int64, err error) {
	err = storage.DB.Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, 0, &StorageFault{Err: err}
	}

	err = storage.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, &StorageFault{Err: err}
	}

	err = storage.DB.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, 0, &StorageFault{Err: err}
	}
	return notifications, total, unread, nil
}

// MarkRead marks one of the recipient's notifications read. Records are never
// otherwise mutated after creation.
func (ns *NotificationService) MarkRead(recipientID, notificationID uint) error {
	var notification models.Notification
	err := storage.DB.Where("id = ? AND recipient_id = ?", notificationID, recipientID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: "Notification not found"}
		}
		return &StorageFault{Err: err}
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		return &StorageFault{Err: err}
	}
	return nil
}
