package notification

import (
	"log/slog"

	"github.com/Efeg35/contravo-sub006/internal"
)

type Repository interface {
	Create(n *Notification) error
	ListByUser(userID int64, limit, offset int) ([]*Notification, error)
	GetByID(notificationID int64) (*Notification, error)
	MarkRead(notificationID int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Notify persists one notification per target user.
func (s *Service) Notify(userIDs []int64, contractID int64, kind, message string) {
	for _, userID := range userIDs {
		n := &Notification{
			UserID:     userID,
			ContractID: &contractID,
			Kind:       kind,
			Message:    message,
		}
		if err := s.repo.Create(n); err != nil {
			s.logger.Error("failed to persist notification",
				"error", err,
				"user_id", userID,
				"contract_id", contractID,
				"kind", kind)
		}
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(userID int64, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(userID, limit, offset)
}

// MarkRead marks a notification as read. Users can only touch their own rows.
func (s *Service) MarkRead(notificationID, userID int64) error {
	n, err := s.repo.GetByID(notificationID)
	if err != nil {
		return internal.NewNotFoundError("Notification not found", internal.ErrCodeNotificationNotFound)
	}
	if n.UserID != userID {
		return internal.ErrUnauthorizedAccess
	}
	return s.repo.MarkRead(notificationID)
}
