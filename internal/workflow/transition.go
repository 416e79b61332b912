package workflow

import (
	"github.com/Efeg35/contravo-sub006/internal/auth"
)

// transitionRule is one row of the status decision table: the predicate that
// must hold for the actor, and the action presented when it does.
type transitionRule struct {
	permitted func(c *ContractSnapshot, actor *auth.Actor) (bool, error)
	action    Action
	label     string
}

// transitionTable maps each contract status to its single candidate action.
// Statuses without a row (REJECTED, REVISION_REQUESTED, ACTIVE, ARCHIVED)
// have nothing actionable. Adding a status means adding a row, not editing
// control flow.
var transitionTable = map[ContractStatus]transitionRule{
	StatusDraft: {
		permitted: ownerOrEditor,
		action:    ActionRequestApproval,
		label:     "Start approval flow",
	},
	StatusInReview: {
		permitted: func(c *ContractSnapshot, actor *auth.Actor) (bool, error) {
			_, ok := c.pendingApprovalFor(actor.ID)
			return ok, nil
		},
		action: ActionApproveContract,
		label:  "Approve contract",
	},
	StatusApproved: {
		permitted: ownerOrEditor,
		action:    ActionSendForSignature,
		label:     "Send for signature",
	},
	StatusSentForSignature: {
		permitted: func(c *ContractSnapshot, actor *auth.Actor) (bool, error) {
			_, ok := c.actionableSignatureFor(actor.ID)
			return ok, nil
		},
		action: ActionSignDocument,
		label:  "Sign contract",
	},
	StatusSigned: {
		permitted: ownerOrEditor,
		action:    ActionActivateContract,
		label:     "Activate contract",
	},
}

// ownerOrEditor holds when the actor owns the contract or holds an
// EDITOR-or-above role for it. Effective permissions are a union: a lesser
// company role never shadows a sufficient global role.
func ownerOrEditor(c *ContractSnapshot, actor *auth.Actor) (bool, error) {
	if actor.ID == c.CreatedByID {
		return true, nil
	}

	globalOK, err := actor.GlobalRole.Includes(auth.GlobalRoleEditor)
	if err != nil {
		return false, err
	}
	if globalOK {
		return true, nil
	}

	if companyRole, ok := c.companyRoleFor(actor); ok {
		companyOK, err := companyRole.Includes(auth.CompanyRoleEditor)
		if err != nil {
			return false, err
		}
		return companyOK, nil
	}

	return false, nil
}

// ResolveNextAction computes the single next permissible action for the actor
// on the given contract snapshot, or nil when nothing is actionable. It is a
// pure function of its inputs: same snapshot and actor, same answer. It only
// ever computes — applying the action and mutating status is the caller's
// job.
func ResolveNextAction(c *ContractSnapshot, actor *auth.Actor) (*NextAction, error) {
	rule, ok := transitionTable[c.Status]
	if !ok {
		return nil, nil
	}

	permitted, err := rule.permitted(c, actor)
	if err != nil {
		return nil, err
	}
	if !permitted {
		return nil, nil
	}

	return &NextAction{Action: rule.action, Label: rule.label}, nil
}

// transitionTarget maps an applied action to the status it moves the contract
// into. Used by the service layer when the platform executes the action the
// resolver returned.
var transitionTarget = map[Action]ContractStatus{
	ActionRequestApproval:  StatusInReview,
	ActionApproveContract:  StatusApproved,
	ActionSendForSignature: StatusSentForSignature,
	ActionSignDocument:     StatusSigned,
	ActionActivateContract: StatusActive,
}

// TargetStatus returns the status an action transitions into.
func TargetStatus(action Action) (ContractStatus, bool) {
	s, ok := transitionTarget[action]
	return s, ok
}
