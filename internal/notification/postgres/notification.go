package postgres

import (
	"time"

	"gorm.io/gorm"

	notificationDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/notification"
	"github.com/Efeg35/contravo-sub006/internal/notification"
)

// NotificationRepository implements the notification.Repository interface
// using GORM
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

// Create saves a new notification
func (r *NotificationRepository) Create(n *notification.Notification) error {
	model := notification.ToDataModel(n)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(userID int64, limit, offset int) ([]*notification.Notification, error) {
	var models []*notificationDatamodel.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(models))
	for i, m := range models {
		notifications[i] = notification.FromDataModel(m)
	}
	return notifications, nil
}

// GetByID retrieves a single notification
func (r *NotificationRepository) GetByID(notificationID int64) (*notification.Notification, error) {
	var model notificationDatamodel.Notification
	if err := r.db.Where("id = ?", notificationID).First(&model).Error; err != nil {
		return nil, err
	}
	return notification.FromDataModel(&model), nil
}

// MarkRead stamps the notification's read time
func (r *NotificationRepository) MarkRead(notificationID int64) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ?", notificationID).
		Update("read_at", time.Now()).Error
}
