package contract

import (
	"strings"

	"github.com/Efeg35/contravo-sub006/internal"
)

const maxTitleLength = 255

type CreateContractDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CompanyID   *int64   `json:"company_id,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (d *CreateContractDTO) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeInvalidTitle)
	}
	if len(title) > maxTitleLength {
		return internal.NewValidationFieldError("title", "title must be at most 255 characters", internal.ErrCodeInvalidTitle)
	}
	if d.Amount != nil && *d.Amount < 0 {
		return internal.NewValidationFieldError("amount", "amount must not be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateContractDTO struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (d *UpdateContractDTO) Validate() error {
	if d.Title != nil {
		title := strings.TrimSpace(*d.Title)
		if title == "" {
			return internal.NewValidationFieldError("title", "title must not be empty", internal.ErrCodeInvalidTitle)
		}
		if len(title) > maxTitleLength {
			return internal.NewValidationFieldError("title", "title must be at most 255 characters", internal.ErrCodeInvalidTitle)
		}
	}
	if d.Amount != nil && *d.Amount < 0 {
		return internal.NewValidationFieldError("amount", "amount must not be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}
