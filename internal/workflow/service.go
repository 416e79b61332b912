package workflow

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/conditions"
	"github.com/Efeg35/contravo-sub006/internal/core/events"
)

// Repository loads consistent contract snapshots and applies the status
// mutations the resolver decided on. The snapshot must be fetched in one
// read, relations included.
type Repository interface {
	GetSnapshot(contractID int64) (*ContractSnapshot, error)
	GetRecord(contractID int64) (map[string]any, error)
	GetSteps(contractID int64) ([]Step, error)
	UpdateStatus(contractID int64, status ContractStatus) error
	SetApprovalStatus(contractID, approverID int64, status ApprovalStatus) error
	SetSignatureStatus(contractID, userID int64, order int, status SignatureStatus) error
}

// Step is a conditional workflow step; its conditions are evaluated against
// the contract record to decide whether the step applies.
type Step struct {
	ID         int64                  `json:"id"`
	Name       string                 `json:"name"`
	Order      int                    `json:"order"`
	Conditions []conditions.Condition `json:"conditions"`
}

// Service wraps the pure resolver with snapshot loading and action
// application. The resolver computes; this service is the collaborator that
// actually moves contract status.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// NextAction loads the contract snapshot and resolves the actor's single
// next permissible action, or nil when nothing is actionable.
func (s *Service) NextAction(contractID int64, actor *auth.Actor) (*NextAction, error) {
	snapshot, err := s.repo.GetSnapshot(contractID)
	if err != nil {
		s.logger.Error("failed to load contract snapshot", "error", err, "contract_id", contractID)
		return nil, internal.ErrContractNotFound
	}
	return ResolveNextAction(snapshot, actor)
}

// ApplyAction executes a previously resolved action. The requested action
// must still be the one the resolver yields for the current snapshot;
// anything else is rejected rather than guessed around.
func (s *Service) ApplyAction(ctx context.Context, contractID int64, actor *auth.Actor, requested Action) error {
	snapshot, err := s.repo.GetSnapshot(contractID)
	if err != nil {
		s.logger.Error("failed to load contract snapshot", "error", err, "contract_id", contractID)
		return internal.ErrContractNotFound
	}

	next, err := ResolveNextAction(snapshot, actor)
	if err != nil {
		return err
	}
	if next == nil || next.Action != requested {
		s.logger.Warn("action not permitted",
			"contract_id", contractID,
			"user_id", actor.ID,
			"requested", requested,
			"status", snapshot.Status)
		return internal.ErrActionNotPermitted
	}

	// events announce transitions that happened; a failed mutation must
	// never notify anyone
	switch requested {
	case ActionRequestApproval:
		if err = s.repo.UpdateStatus(contractID, StatusInReview); err == nil {
			s.publish(ctx, events.EventContractSubmitted, snapshot, actor)
		}

	case ActionApproveContract:
		idx, _ := snapshot.pendingApprovalFor(actor.ID)
		approval := snapshot.Approvals[idx]
		if err = s.repo.SetApprovalStatus(contractID, approval.ApproverID, ApprovalApproved); err != nil {
			break
		}
		// the contract only advances once every approval is decided
		if remainingPending(snapshot, idx) == 0 {
			if err = s.repo.UpdateStatus(contractID, StatusApproved); err == nil {
				s.publish(ctx, events.EventContractApproved, snapshot, actor)
			}
		}

	case ActionSendForSignature:
		if err = s.repo.UpdateStatus(contractID, StatusSentForSignature); err == nil {
			s.publish(ctx, events.EventContractSentForSignature, snapshot, actor)
		}

	case ActionSignDocument:
		idx, _ := snapshot.actionableSignatureFor(actor.ID)
		sig := snapshot.SignatureRequests[idx]
		if err = s.repo.SetSignatureStatus(contractID, sig.UserID, sig.Order, SignatureSigned); err != nil {
			break
		}
		if remainingSignatures(snapshot, idx) == 0 {
			if err = s.repo.UpdateStatus(contractID, StatusSigned); err == nil {
				s.publish(ctx, events.EventContractSigned, snapshot, actor)
			}
		}

	case ActionActivateContract:
		if err = s.repo.UpdateStatus(contractID, StatusActive); err == nil {
			s.publish(ctx, events.EventContractActivated, snapshot, actor)
		}
	}

	if err != nil {
		s.logger.Error("failed to apply action",
			"error", err,
			"contract_id", contractID,
			"action", requested)
		return err
	}

	s.logger.Info("action applied",
		"contract_id", contractID,
		"user_id", actor.ID,
		"action", requested)
	return nil
}

// ApplicableSteps returns the workflow steps whose condition gates pass for
// the contract's current record, in step order.
func (s *Service) ApplicableSteps(contractID int64) ([]Step, error) {
	steps, err := s.repo.GetSteps(contractID)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetRecord(contractID)
	if err != nil {
		return nil, err
	}

	applicable := make([]Step, 0, len(steps))
	for _, step := range steps {
		if conditions.Evaluate(step.Conditions, record) {
			applicable = append(applicable, step)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Order < applicable[j].Order
	})
	return applicable, nil
}

// ParseStepConditions decodes the JSON condition list stored with a workflow
// step. Malformed JSON is logged and treated as an empty list.
func ParseStepConditions(raw string, logger *slog.Logger) []conditions.Condition {
	if raw == "" {
		return nil
	}
	var conds []conditions.Condition
	if err := json.Unmarshal([]byte(raw), &conds); err != nil {
		logger.Warn("malformed step conditions, treating as empty", "error", err)
		return nil
	}
	return conds
}

func (s *Service) publish(ctx context.Context, eventType string, snapshot *ContractSnapshot, actor *auth.Actor) {
	if s.bus == nil {
		return
	}
	event := events.NewContractEvent(eventType, snapshot.ID, actor.ID, notifyTargets(snapshot, eventType))
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish contract event", "error", err, "event_type", eventType)
	}
}

// notifyTargets picks who hears about a lifecycle event: approvers on
// submission, signers on send-out, the owner otherwise.
func notifyTargets(snapshot *ContractSnapshot, eventType string) []int64 {
	switch eventType {
	case events.EventContractSubmitted:
		ids := make([]int64, 0, len(snapshot.Approvals))
		for _, a := range snapshot.Approvals {
			ids = append(ids, a.ApproverID)
		}
		return ids
	case events.EventContractSentForSignature:
		ids := make([]int64, 0, len(snapshot.SignatureRequests))
		for _, sr := range snapshot.SignatureRequests {
			ids = append(ids, sr.UserID)
		}
		return ids
	default:
		return []int64{snapshot.CreatedByID}
	}
}

// remainingPending counts PENDING approvals besides the one just decided,
// identified by index so duplicate (approver, timestamp) rows are not
// collapsed together.
func remainingPending(snapshot *ContractSnapshot, decidedIdx int) int {
	count := 0
	for i, a := range snapshot.Approvals {
		if i == decidedIdx || a.Status != ApprovalPending {
			continue
		}
		count++
	}
	return count
}

// remainingSignatures counts non-terminal signature requests besides the one
// just signed.
func remainingSignatures(snapshot *ContractSnapshot, signedIdx int) int {
	count := 0
	for i, sr := range snapshot.SignatureRequests {
		if i == signedIdx {
			continue
		}
		if sr.Status == SignaturePending || sr.Status == SignatureSent {
			count++
		}
	}
	return count
}
