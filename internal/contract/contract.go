package contract

import (
	"strings"
	"time"

	contractDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/contract"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

type Contract struct {
	ID          int64                       `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description,omitempty"`
	Status      workflow.ContractStatus     `json:"status"`
	Department  string                      `json:"department,omitempty"`
	CreatedByID int64                       `json:"created_by_id"`
	CompanyID   *int64                      `json:"company_id,omitempty"`
	Amount      *float64                    `json:"amount,omitempty"`
	Tags        []string                    `json:"tags,omitempty"`
	Approvals   []workflow.Approval         `json:"approvals,omitempty"`
	Signatures  []workflow.SignatureRequest `json:"signature_requests,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (c *Contract) IsDraft() bool {
	return c.Status == workflow.StatusDraft
}

// Record flattens the contract into the generic map the condition evaluator
// works on.
func (c *Contract) Record() map[string]any {
	record := map[string]any{
		"id":            c.ID,
		"title":         c.Title,
		"status":        string(c.Status),
		"department":    c.Department,
		"created_by_id": c.CreatedByID,
		"tags":          c.Tags,
	}
	if c.Amount != nil {
		record["amount"] = *c.Amount
	}
	if c.CompanyID != nil {
		record["company_id"] = *c.CompanyID
	}
	return record
}

func FromDataModel(m *contractDatamodel.Contract) *Contract {
	c := &Contract{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      workflow.ContractStatus(m.Status),
		Department:  m.Department,
		CreatedByID: m.CreatedByID,
		CompanyID:   m.CompanyID,
		Amount:      m.Amount,
		Tags:        splitTags(m.Tags),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, a := range m.Approvals {
		c.Approvals = append(c.Approvals, workflow.Approval{
			ApproverID: a.ApproverID,
			Status:     workflow.ApprovalStatus(a.Status),
			CreatedAt:  a.CreatedAt,
		})
	}
	for _, s := range m.SignatureRequests {
		c.Signatures = append(c.Signatures, workflow.SignatureRequest{
			UserID: s.UserID,
			Status: workflow.SignatureStatus(s.Status),
			Order:  s.SigningOrder,
		})
	}
	return c
}

func ToDataModel(c *Contract) *contractDatamodel.Contract {
	return &contractDatamodel.Contract{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		Department:  c.Department,
		CreatedByID: c.CreatedByID,
		CompanyID:   c.CompanyID,
		Amount:      c.Amount,
		Tags:        joinTags(c.Tags),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModelSlice(models []*contractDatamodel.Contract) []*Contract {
	result := make([]*Contract, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
