package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
)

var _ = Describe("Role hierarchy", func() {
	Describe("global roles", func() {
		It("orders ADMIN above EDITOR above VIEWER", func() {
			admin, err := auth.GlobalRoleAdmin.Rank()
			Expect(err).ToNot(HaveOccurred())
			editor, err := auth.GlobalRoleEditor.Rank()
			Expect(err).ToNot(HaveOccurred())
			viewer, err := auth.GlobalRoleViewer.Rank()
			Expect(err).ToNot(HaveOccurred())

			Expect(admin).To(BeNumerically(">", editor))
			Expect(editor).To(BeNumerically(">", viewer))
		})

		It("lets a role include every lower rank", func() {
			ok, err := auth.GlobalRoleAdmin.Includes(auth.GlobalRoleViewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = auth.GlobalRoleEditor.Includes(auth.GlobalRoleViewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = auth.GlobalRoleViewer.Includes(auth.GlobalRoleEditor)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("includes itself", func() {
			ok, err := auth.GlobalRoleEditor.Includes(auth.GlobalRoleEditor)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})

	Describe("company roles", func() {
		It("orders OWNER above ADMIN above EDITOR above VIEWER", func() {
			owner, _ := auth.CompanyRoleOwner.Rank()
			admin, _ := auth.CompanyRoleAdmin.Rank()
			editor, _ := auth.CompanyRoleEditor.Rank()
			viewer, _ := auth.CompanyRoleViewer.Rank()

			Expect(owner).To(BeNumerically(">", admin))
			Expect(admin).To(BeNumerically(">", editor))
			Expect(editor).To(BeNumerically(">", viewer))
		})
	})

	Describe("department roles", func() {
		It("orders HEAD above MANAGER above MEMBER", func() {
			head, _ := auth.DepartmentRoleHead.Rank()
			manager, _ := auth.DepartmentRoleManager.Rank()
			member, _ := auth.DepartmentRoleMember.Rank()

			Expect(head).To(BeNumerically(">", manager))
			Expect(manager).To(BeNumerically(">", member))
		})
	})

	Describe("unrecognized role tokens", func() {
		It("fails fast with a distinguishable invalid-role error", func() {
			_, err := auth.GlobalRole("SUPERUSER").Rank()
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("never downgrades to the lowest rank", func() {
			ok, err := auth.GlobalRole("SUPERUSER").Includes(auth.GlobalRoleViewer)
			Expect(err).To(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("RolePriority", func() {
		It("returns per-tier monotonic priorities", func() {
			p1, err := auth.RolePriority("VIEWER", auth.TierGlobal)
			Expect(err).ToNot(HaveOccurred())
			p2, err := auth.RolePriority("ADMIN", auth.TierGlobal)
			Expect(err).ToNot(HaveOccurred())
			Expect(p2).To(BeNumerically(">", p1))

			p3, err := auth.RolePriority("OWNER", auth.TierCompany)
			Expect(err).ToNot(HaveOccurred())
			p4, err := auth.RolePriority("VIEWER", auth.TierCompany)
			Expect(err).ToNot(HaveOccurred())
			Expect(p3).To(BeNumerically(">", p4))
		})

		It("rejects an unknown tier", func() {
			_, err := auth.RolePriority("ADMIN", auth.RoleTier("galaxy"))
			Expect(err).To(HaveOccurred())
		})
	})
})
