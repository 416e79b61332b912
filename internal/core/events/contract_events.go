package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventContractSubmitted        = "contract.submitted"
	EventContractApproved         = "contract.approved"
	EventContractSentForSignature = "contract.sent_for_signature"
	EventContractSigned           = "contract.signed"
	EventContractActivated        = "contract.activated"
)

// NewContractEvent builds a lifecycle event carrying the contract, the acting
// user, and the IDs of users who should be notified.
func NewContractEvent(eventType string, contractID, actorID int64, notifyUserIDs []int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"contract_id": contractID,
			"actor_id":    actorID,
			"notify":      notifyUserIDs,
		},
	}
}
