package notification

import (
	"time"

	notificationDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/notification"
)

type Notification struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	ContractID *int64     `json:"contract_id,omitempty"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromDataModel(m *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:         m.ID,
		UserID:     m.UserID,
		ContractID: m.ContractID,
		Kind:       m.Kind,
		Message:    m.Message,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:         n.ID,
		UserID:     n.UserID,
		ContractID: n.ContractID,
		Kind:       n.Kind,
		Message:    n.Message,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}
