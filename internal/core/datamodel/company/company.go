package company

import "time"

type Company struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	CreatedByID int64     `gorm:"column:created_by_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

// CompanyMember holds at most one row per (user, company) pair.
type CompanyMember struct {
	ID          int64     `gorm:"primaryKey"`
	CompanyID   int64     `gorm:"column:company_id;not null;uniqueIndex:idx_company_user"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_company_user"`
	CompanyRole string    `gorm:"column:company_role;not null;default:VIEWER"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}
