package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/core/events"
	"github.com/Efeg35/contravo-sub006/internal/notification"
)

type mockNotificationRepository struct {
	created map[int64]*notification.Notification
	nextID  int64
	read    []int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		created: make(map[int64]*notification.Notification),
		nextID:  1,
	}
}

func (m *mockNotificationRepository) Create(n *notification.Notification) error {
	n.ID = m.nextID
	m.nextID++
	m.created[n.ID] = n
	return nil
}

func (m *mockNotificationRepository) ListByUser(userID int64, limit, offset int) ([]*notification.Notification, error) {
	result := make([]*notification.Notification, 0)
	for _, n := range m.created {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepository) GetByID(notificationID int64) (*notification.Notification, error) {
	n, ok := m.created[notificationID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return n, nil
}

func (m *mockNotificationRepository) MarkRead(notificationID int64) error {
	m.read = append(m.read, notificationID)
	return nil
}

var _ = Describe("NotificationService", func() {
	var (
		service *notification.Service
		repo    *mockNotificationRepository
		logger  *slog.Logger
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = notification.NewService(repo, logger)
	})

	Describe("Notify", func() {
		It("persists one notification per target", func() {
			service.Notify([]int64{3, 4}, 10, events.EventContractSubmitted, "pending approval")
			Expect(repo.created).To(HaveLen(2))
		})
	})

	Describe("MarkRead", func() {
		It("marks the caller's own notification", func() {
			service.Notify([]int64{3}, 10, events.EventContractApproved, "approved")

			Expect(service.MarkRead(1, 3)).To(Succeed())
			Expect(repo.read).To(Equal([]int64{1}))
		})

		It("refuses to touch another user's notification", func() {
			service.Notify([]int64{3}, 10, events.EventContractApproved, "approved")

			err := service.MarkRead(1, 42)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
			Expect(repo.read).To(BeEmpty())
		})
	})

	Describe("EventHandler", func() {
		It("turns a contract event into notifications for its targets", func() {
			bus := events.NewEventBus(logger)
			notification.NewEventHandler(service, logger).RegisterEventHandlers(bus)

			event := events.NewContractEvent(events.EventContractSubmitted, 10, 1, []int64{3, 4})
			Expect(bus.Publish(context.Background(), event)).To(Succeed())

			Expect(repo.created).To(HaveLen(2))
			for _, n := range repo.created {
				Expect(n.Kind).To(Equal(events.EventContractSubmitted))
				Expect(*n.ContractID).To(Equal(int64(10)))
			}
		})
	})
})
