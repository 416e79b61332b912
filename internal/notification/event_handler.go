package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Efeg35/contravo-sub006/internal/core/events"
)

// EventHandler turns contract lifecycle events into persisted notifications
// for the users the event names.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

var eventMessages = map[string]string{
	events.EventContractSubmitted:        "A contract is waiting for your approval",
	events.EventContractApproved:         "Your contract has been approved",
	events.EventContractSentForSignature: "A contract is waiting for your signature",
	events.EventContractSigned:           "Your contract has been fully signed",
	events.EventContractActivated:        "Your contract is now active",
}

func (h *EventHandler) HandleContractEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload().(map[string]interface{})
	if !ok {
		h.logger.Error("invalid payload for contract event", "event_type", event.EventType())
		return fmt.Errorf("expected map payload, got %T", event.Payload())
	}

	contractID, ok := payload["contract_id"].(int64)
	if !ok {
		return fmt.Errorf("contract event %s missing contract_id", event.EventID())
	}
	targets, ok := payload["notify"].([]int64)
	if !ok || len(targets) == 0 {
		h.logger.Debug("contract event without notify targets", "event_id", event.EventID())
		return nil
	}

	message, ok := eventMessages[event.EventType()]
	if !ok {
		message = "A contract you are involved in has changed"
	}

	h.service.Notify(targets, contractID, event.EventType(), message)

	h.logger.Info("notifications created for contract event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"contract_id", contractID,
		"targets", len(targets))
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	for _, eventType := range []string{
		events.EventContractSubmitted,
		events.EventContractApproved,
		events.EventContractSentForSignature,
		events.EventContractSigned,
		events.EventContractActivated,
	} {
		eventBus.Subscribe(eventType, h.HandleContractEvent)
	}

	h.logger.Info("notification event handlers registered")
}
