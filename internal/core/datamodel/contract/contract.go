package contract

import (
	"time"

	"gorm.io/gorm"
)

type Contract struct {
	ID          int64          `gorm:"primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Description string         `gorm:"column:description"`
	Status      string         `gorm:"column:status;not null;default:DRAFT"`
	Department  string         `gorm:"column:department"`
	CreatedByID int64          `gorm:"column:created_by_id;not null"`
	CompanyID   *int64         `gorm:"column:company_id"`
	Amount      *float64       `gorm:"column:amount"`
	Tags        string         `gorm:"column:tags"`
	CreatedAt   time.Time      `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;default:now()"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Approvals         []Approval         `gorm:"foreignKey:ContractID"`
	SignatureRequests []SignatureRequest `gorm:"foreignKey:ContractID"`
}

type Approval struct {
	ID         int64      `gorm:"primaryKey"`
	ContractID int64      `gorm:"column:contract_id;not null;index"`
	ApproverID int64      `gorm:"column:approver_id;not null"`
	Status     string     `gorm:"column:status;not null;default:PENDING"`
	Comment    string     `gorm:"column:comment"`
	DecidedAt  *time.Time `gorm:"column:decided_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;default:now()"`
}

type SignatureRequest struct {
	ID           int64      `gorm:"primaryKey"`
	ContractID   int64      `gorm:"column:contract_id;not null;index"`
	UserID       int64      `gorm:"column:user_id;not null"`
	Status       string     `gorm:"column:status;not null;default:PENDING"`
	SigningOrder int        `gorm:"column:signing_order;not null;default:0"`
	SignedAt     *time.Time `gorm:"column:signed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
}

// WorkflowStep is a conditional step inside an approval template. Conditions
// is a JSON-encoded list of field/operator/value predicates evaluated against
// the contract record.
type WorkflowStep struct {
	ID         int64     `gorm:"primaryKey"`
	ContractID int64     `gorm:"column:contract_id;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	StepOrder  int       `gorm:"column:step_order;not null;default:0"`
	Conditions string    `gorm:"column:conditions"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}
