package workflow_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/conditions"
	"github.com/Efeg35/contravo-sub006/internal/core/events"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

type mockWorkflowRepository struct {
	snapshots map[int64]*workflow.ContractSnapshot
	records   map[int64]map[string]any
	steps     map[int64][]workflow.Step

	statusUpdates    []workflow.ContractStatus
	approvalUpdates  []int64
	signatureUpdates []int64
	getError         error
	updateError      error
	statusError      error
}

func newMockWorkflowRepository() *mockWorkflowRepository {
	return &mockWorkflowRepository{
		snapshots: make(map[int64]*workflow.ContractSnapshot),
		records:   make(map[int64]map[string]any),
		steps:     make(map[int64][]workflow.Step),
	}
}

func (m *mockWorkflowRepository) GetSnapshot(contractID int64) (*workflow.ContractSnapshot, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	snapshot, ok := m.snapshots[contractID]
	if !ok {
		return nil, errors.New("contract not found")
	}
	return snapshot, nil
}

func (m *mockWorkflowRepository) GetRecord(contractID int64) (map[string]any, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.records[contractID], nil
}

func (m *mockWorkflowRepository) GetSteps(contractID int64) ([]workflow.Step, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.steps[contractID], nil
}

func (m *mockWorkflowRepository) UpdateStatus(contractID int64, status workflow.ContractStatus) error {
	if m.updateError != nil {
		return m.updateError
	}
	if m.statusError != nil {
		return m.statusError
	}
	m.statusUpdates = append(m.statusUpdates, status)
	if snapshot, ok := m.snapshots[contractID]; ok {
		snapshot.Status = status
	}
	return nil
}

func (m *mockWorkflowRepository) SetApprovalStatus(contractID, approverID int64, status workflow.ApprovalStatus) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.approvalUpdates = append(m.approvalUpdates, approverID)
	return nil
}

func (m *mockWorkflowRepository) SetSignatureStatus(contractID, userID int64, order int, status workflow.SignatureStatus) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.signatureUpdates = append(m.signatureUpdates, userID)
	return nil
}

var _ = Describe("WorkflowService", func() {
	var (
		service *workflow.Service
		repo    *mockWorkflowRepository
		bus     *events.EventBus
		logger  *slog.Logger
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockWorkflowRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		service = workflow.NewService(repo, bus, logger)
		ctx = context.Background()
	})

	Describe("NextAction", func() {
		It("resolves from the stored snapshot", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
			}
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			next, err := service.NextAction(10, actor)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionRequestApproval))
		})

		It("maps a missing contract to a not-found error", func() {
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			_, err := service.NextAction(404, actor)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not found"))
		})
	})

	Describe("ApplyAction", func() {
		It("moves a draft into review when the owner requests approval", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
			}
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, actor, workflow.ActionRequestApproval)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.statusUpdates).To(Equal([]workflow.ContractStatus{workflow.StatusInReview}))
		})

		It("rejects an action the resolver does not currently yield", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
			}
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, actor, workflow.ActionSignDocument)
			Expect(err).To(HaveOccurred())
			Expect(repo.statusUpdates).To(BeEmpty())
		})

		It("rejects actors with nothing actionable", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
			}
			stranger := &auth.Actor{ID: 42, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, stranger, workflow.ActionRequestApproval)
			Expect(err).To(HaveOccurred())
		})

		It("records the earliest pending approval and holds status until all are decided", func() {
			now := time.Now()
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: now},
					{ApproverID: 4, Status: workflow.ApprovalPending, CreatedAt: now.Add(time.Minute)},
				},
			}
			approver := &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, approver, workflow.ActionApproveContract)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.approvalUpdates).To(Equal([]int64{3}))
			// approver 4 is still pending, so the contract must not advance
			Expect(repo.statusUpdates).To(BeEmpty())
		})

		It("advances to APPROVED once the last approval is decided", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: time.Now()},
				},
			}
			approver := &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, approver, workflow.ActionApproveContract)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.statusUpdates).To(Equal([]workflow.ContractStatus{workflow.StatusApproved}))
		})

		It("signs the lowest-order open request and advances when it is the last", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusSentForSignature,
				CreatedByID: 1,
				SignatureRequests: []workflow.SignatureRequest{
					{UserID: 3, Status: workflow.SignaturePending, Order: 1},
				},
			}
			signer := &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, signer, workflow.ActionSignDocument)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.signatureUpdates).To(Equal([]int64{3}))
			Expect(repo.statusUpdates).To(Equal([]workflow.ContractStatus{workflow.StatusSigned}))
		})

		It("holds status when the same approver has two pending approvals with identical timestamps", func() {
			now := time.Now()
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: now},
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: now},
				},
			}
			approver := &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, approver, workflow.ActionApproveContract)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.approvalUpdates).To(Equal([]int64{3}))
			// one approval is still pending, so the contract must not advance
			Expect(repo.statusUpdates).To(BeEmpty())
		})

		It("publishes a lifecycle event on submission", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: time.Now()},
				},
			}
			received := make([]events.Event, 0, 1)
			bus.Subscribe(events.EventContractSubmitted, func(ctx context.Context, event events.Event) error {
				received = append(received, event)
				return nil
			})
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, actor, workflow.ActionRequestApproval)
			Expect(err).ToNot(HaveOccurred())
			Expect(received).To(HaveLen(1))
			Expect(received[0].EventType()).To(Equal(events.EventContractSubmitted))
		})

		It("publishes nothing when the status update fails", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: time.Now()},
				},
			}
			repo.updateError = errors.New("db down")
			received := 0
			bus.Subscribe(events.EventContractSubmitted, func(ctx context.Context, event events.Event) error {
				received++
				return nil
			})
			actor := &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, actor, workflow.ActionRequestApproval)
			Expect(err).To(MatchError(repo.updateError))
			// the approvers were never notified of a transition that did not happen
			Expect(received).To(BeZero())
		})

		It("publishes no approval event when advancing to APPROVED fails", func() {
			repo.snapshots[10] = &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: time.Now()},
				},
			}
			repo.statusError = errors.New("db down")
			received := 0
			bus.Subscribe(events.EventContractApproved, func(ctx context.Context, event events.Event) error {
				received++
				return nil
			})
			approver := &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}

			err := service.ApplyAction(ctx, 10, approver, workflow.ActionApproveContract)
			Expect(err).To(MatchError(repo.statusError))
			Expect(repo.approvalUpdates).To(Equal([]int64{3}))
			Expect(received).To(BeZero())
		})
	})

	Describe("ApplicableSteps", func() {
		It("keeps only steps whose condition gates pass, in step order", func() {
			repo.records[10] = map[string]any{"amount": 5000, "department": "Hukuk"}
			repo.steps[10] = []workflow.Step{
				{ID: 2, Name: "legal review", Order: 2, Conditions: []conditions.Condition{
					{Field: "department", Operator: conditions.OpEquals, Value: "Hukuk"},
				}},
				{ID: 1, Name: "finance review", Order: 1, Conditions: []conditions.Condition{
					{Field: "amount", Operator: conditions.OpGreaterThan, Value: 1000},
				}},
				{ID: 3, Name: "board review", Order: 3, Conditions: []conditions.Condition{
					{Field: "amount", Operator: conditions.OpGreaterThan, Value: 100000},
				}},
			}

			steps, err := service.ApplicableSteps(10)
			Expect(err).ToNot(HaveOccurred())
			Expect(steps).To(HaveLen(2))
			Expect(steps[0].Name).To(Equal("finance review"))
			Expect(steps[1].Name).To(Equal("legal review"))
		})

		It("keeps unconditioned steps", func() {
			repo.records[10] = map[string]any{}
			repo.steps[10] = []workflow.Step{{ID: 1, Name: "always", Order: 1}}

			steps, err := service.ApplicableSteps(10)
			Expect(err).ToNot(HaveOccurred())
			Expect(steps).To(HaveLen(1))
		})
	})
})
