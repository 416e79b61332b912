package workflow

import (
	"time"

	"github.com/Efeg35/contravo-sub006/internal/auth"
)

type ContractStatus string

const (
	StatusDraft             ContractStatus = "DRAFT"
	StatusInReview          ContractStatus = "IN_REVIEW"
	StatusRevisionRequested ContractStatus = "REVISION_REQUESTED"
	StatusRejected          ContractStatus = "REJECTED"
	StatusApproved          ContractStatus = "APPROVED"
	StatusSentForSignature  ContractStatus = "SENT_FOR_SIGNATURE"
	StatusSigned            ContractStatus = "SIGNED"
	StatusActive            ContractStatus = "ACTIVE"
	StatusArchived          ContractStatus = "ARCHIVED"
)

type ApprovalStatus string

const (
	ApprovalPending           ApprovalStatus = "PENDING"
	ApprovalApproved          ApprovalStatus = "APPROVED"
	ApprovalRejected          ApprovalStatus = "REJECTED"
	ApprovalRevisionRequested ApprovalStatus = "REVISION_REQUESTED"
)

type SignatureStatus string

const (
	SignaturePending  SignatureStatus = "PENDING"
	SignatureSent     SignatureStatus = "SENT"
	SignatureSigned   SignatureStatus = "SIGNED"
	SignatureDeclined SignatureStatus = "DECLINED"
)

type Action string

const (
	ActionRequestApproval  Action = "REQUEST_APPROVAL"
	ActionApproveContract  Action = "APPROVE_CONTRACT"
	ActionSendForSignature Action = "SEND_FOR_SIGNATURE"
	ActionSignDocument     Action = "SIGN_DOCUMENT"
	ActionActivateContract Action = "ACTIVATE_CONTRACT"
)

// NextAction is the single workflow step the platform presents to an actor
// for a contract in its current status.
type NextAction struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
}

// Approval is an approval record as loaded with the contract snapshot.
type Approval struct {
	ApproverID int64          `json:"approver_id"`
	Status     ApprovalStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SignatureRequest is a signing-sequence entry; only the lowest-order
// non-terminal entry for a user is actionable.
type SignatureRequest struct {
	UserID int64           `json:"user_id"`
	Status SignatureStatus `json:"status"`
	Order  int             `json:"order"`
}

// ContractSnapshot is the read-only view the resolver works on. The caller
// must fetch the contract with its approvals, signatures and company in one
// consistent read; missing relations are simply empty slices.
type ContractSnapshot struct {
	ID                int64              `json:"id"`
	Status            ContractStatus     `json:"status"`
	CreatedByID       int64              `json:"created_by_id"`
	CompanyID         *int64             `json:"company_id,omitempty"`
	CompanyCreatedBy  *int64             `json:"company_created_by,omitempty"`
	Approvals         []Approval         `json:"approvals"`
	SignatureRequests []SignatureRequest `json:"signature_requests"`
}

// companyRoleFor resolves the actor's standing inside the snapshot's company.
// Owning the company (created_by) counts as OWNER even without an explicit
// membership row.
func (c *ContractSnapshot) companyRoleFor(actor *auth.Actor) (auth.CompanyRole, bool) {
	if c.CompanyID == nil {
		return "", false
	}
	if c.CompanyCreatedBy != nil && *c.CompanyCreatedBy == actor.ID {
		return auth.CompanyRoleOwner, true
	}
	return actor.CompanyRoleFor(*c.CompanyID)
}

// pendingApprovalFor returns the index of the actor's earliest PENDING
// approval, if any. The index identifies the record uniquely even when the
// same approver holds several approvals with identical timestamps.
func (c *ContractSnapshot) pendingApprovalFor(actorID int64) (int, bool) {
	earliest := -1
	for i, a := range c.Approvals {
		if a.ApproverID != actorID || a.Status != ApprovalPending {
			continue
		}
		if earliest < 0 || a.CreatedAt.Before(c.Approvals[earliest].CreatedAt) {
			earliest = i
		}
	}
	return earliest, earliest >= 0
}

// actionableSignatureFor returns the index of the actor's lowest-order
// signature request still in a non-terminal status (PENDING or SENT).
func (c *ContractSnapshot) actionableSignatureFor(actorID int64) (int, bool) {
	lowest := -1
	for i, s := range c.SignatureRequests {
		if s.UserID != actorID {
			continue
		}
		if s.Status != SignaturePending && s.Status != SignatureSent {
			continue
		}
		if lowest < 0 || s.Order < c.SignatureRequests[lowest].Order {
			lowest = i
		}
	}
	return lowest, lowest >= 0
}
