package workflow_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

func int64ptr(v int64) *int64 { return &v }

var _ = Describe("ResolveNextAction", func() {
	var (
		owner  *auth.Actor
		editor *auth.Actor
		viewer *auth.Actor
	)

	BeforeEach(func() {
		owner = &auth.Actor{ID: 1, GlobalRole: auth.GlobalRoleViewer}
		editor = &auth.Actor{ID: 2, GlobalRole: auth.GlobalRoleEditor}
		viewer = &auth.Actor{ID: 3, GlobalRole: auth.GlobalRoleViewer}
	})

	Describe("DRAFT contracts", func() {
		It("lets the owner start the approval flow", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusDraft, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionRequestApproval))
			Expect(next.Label).To(Equal("Start approval flow"))
		})

		It("lets a global editor start the approval flow", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusDraft, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, editor)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionRequestApproval))
		})

		It("yields nothing for an unrelated viewer", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusDraft, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, viewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).To(BeNil())
		})

		It("uses the company role when the contract belongs to a company", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusDraft,
				CreatedByID: 1,
				CompanyID:   int64ptr(77),
			}
			companyEditor := &auth.Actor{
				ID:         5,
				GlobalRole: auth.GlobalRoleViewer,
				Memberships: []auth.CompanyMembership{
					{CompanyID: 77, CompanyRole: auth.CompanyRoleEditor},
				},
			}

			next, err := workflow.ResolveNextAction(contract, companyEditor)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionRequestApproval))
		})

		It("treats the company creator as OWNER without a membership row", func() {
			contract := &workflow.ContractSnapshot{
				ID:               10,
				Status:           workflow.StatusDraft,
				CreatedByID:      1,
				CompanyID:        int64ptr(77),
				CompanyCreatedBy: int64ptr(9),
			}
			companyFounder := &auth.Actor{ID: 9, GlobalRole: auth.GlobalRoleViewer}

			next, err := workflow.ResolveNextAction(contract, companyFounder)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
		})
	})

	Describe("IN_REVIEW contracts", func() {
		It("offers approval to an actor with a pending approval record", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalPending, CreatedAt: time.Now()},
				},
			}

			next, err := workflow.ResolveNextAction(contract, viewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionApproveContract))
			Expect(next.Label).To(Equal("Approve contract"))
		})

		It("yields nothing without a pending approval row, even for the owner", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusInReview,
				CreatedByID: 1,
				Approvals: []workflow.Approval{
					{ApproverID: 3, Status: workflow.ApprovalApproved, CreatedAt: time.Now()},
				},
			}

			next, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).To(BeNil())
		})

		It("treats missing approval relations as empty collections", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusInReview, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).To(BeNil())
		})
	})

	Describe("APPROVED contracts", func() {
		It("lets owner or editor send for signature", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusApproved, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, editor)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionSendForSignature))
			Expect(next.Label).To(Equal("Send for signature"))
		})

		It("does not let a lesser company role shadow a global admin", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusApproved,
				CreatedByID: 1,
				CompanyID:   int64ptr(77),
			}
			globalAdmin := &auth.Actor{
				ID:         6,
				GlobalRole: auth.GlobalRoleAdmin,
				Memberships: []auth.CompanyMembership{
					{CompanyID: 77, CompanyRole: auth.CompanyRoleViewer},
				},
			}

			next, err := workflow.ResolveNextAction(contract, globalAdmin)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionSendForSignature))
		})
	})

	Describe("SENT_FOR_SIGNATURE contracts", func() {
		It("offers signing on the actor's lowest-order open request", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusSentForSignature,
				CreatedByID: 1,
				SignatureRequests: []workflow.SignatureRequest{
					{UserID: 3, Status: workflow.SignatureSent, Order: 2},
					{UserID: 3, Status: workflow.SignaturePending, Order: 1},
				},
			}

			next, err := workflow.ResolveNextAction(contract, viewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionSignDocument))
			Expect(next.Label).To(Equal("Sign contract"))
		})

		It("yields nothing when the actor's requests are all terminal", func() {
			contract := &workflow.ContractSnapshot{
				ID:          10,
				Status:      workflow.StatusSentForSignature,
				CreatedByID: 1,
				SignatureRequests: []workflow.SignatureRequest{
					{UserID: 3, Status: workflow.SignatureSigned, Order: 1},
				},
			}

			next, err := workflow.ResolveNextAction(contract, viewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).To(BeNil())
		})
	})

	Describe("SIGNED contracts", func() {
		It("lets owner or editor activate", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusSigned, CreatedByID: 1}

			next, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(next).ToNot(BeNil())
			Expect(next.Action).To(Equal(workflow.ActionActivateContract))
			Expect(next.Label).To(Equal("Activate contract"))
		})
	})

	Describe("terminal and branch statuses", func() {
		It("yields nothing for REJECTED, REVISION_REQUESTED, ACTIVE and ARCHIVED", func() {
			for _, status := range []workflow.ContractStatus{
				workflow.StatusRejected,
				workflow.StatusRevisionRequested,
				workflow.StatusActive,
				workflow.StatusArchived,
			} {
				contract := &workflow.ContractSnapshot{ID: 10, Status: status, CreatedByID: 1}
				next, err := workflow.ResolveNextAction(contract, owner)
				Expect(err).ToNot(HaveOccurred())
				Expect(next).To(BeNil(), "status %s should have no action", status)
			}
		})
	})

	Describe("determinism", func() {
		It("returns identical results for an unchanged snapshot", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusDraft, CreatedByID: 1}

			first, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			second, err := workflow.ResolveNextAction(contract, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Describe("invalid roles", func() {
		It("surfaces the invalid-role error instead of guessing", func() {
			contract := &workflow.ContractSnapshot{ID: 10, Status: workflow.StatusDraft, CreatedByID: 1}
			impostor := &auth.Actor{ID: 99, GlobalRole: auth.GlobalRole("ROOT")}

			next, err := workflow.ResolveNextAction(contract, impostor)
			Expect(err).To(HaveOccurred())
			Expect(next).To(BeNil())
		})
	})
})
