package notification

import "time"

type Notification struct {
	ID         int64      `gorm:"primaryKey"`
	UserID     int64      `gorm:"column:user_id;not null;index"`
	ContractID *int64     `gorm:"column:contract_id"`
	Kind       string     `gorm:"column:kind;not null"`
	Message    string     `gorm:"column:message;not null"`
	ReadAt     *time.Time `gorm:"column:read_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;default:now()"`
}
