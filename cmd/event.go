package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Efeg35/contravo-sub006/internal/core/events"
	"github.com/Efeg35/contravo-sub006/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Contract event bus commands",
	Long:  `Exercise the in-process contract event bus: publish lifecycle events and watch handlers react`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a contract lifecycle event",
	Long: `Publish a lifecycle event onto the bus for debugging notification handlers.

Example:
  contravo event publish contract.submitted --data "contract 42 entered review"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

func publishTestEvent(eventType string) {
	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		logger.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("cli-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "event-cli",
		},
	}

	logger.Info("publishing lifecycle event", "event_type", eventType, "event_id", testEvent.ID)

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		logger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	logger.Info("lifecycle event published")
}

func init() {

	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Free-form payload message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
