package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal/auth"
)

var _ = Describe("Permission resolver", func() {
	Describe("EffectivePermissions", func() {
		It("derives the set from the global role alone when no company context is supplied", func() {
			perms, err := auth.EffectivePermissions(auth.GlobalRoleViewer, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(perms.Has("contracts.view")).To(BeTrue())
			Expect(perms.Has("contracts.create")).To(BeFalse())
		})

		It("is monotonic in role rank", func() {
			viewer, err := auth.EffectivePermissions(auth.GlobalRoleViewer, nil)
			Expect(err).ToNot(HaveOccurred())
			editor, err := auth.EffectivePermissions(auth.GlobalRoleEditor, nil)
			Expect(err).ToNot(HaveOccurred())
			admin, err := auth.EffectivePermissions(auth.GlobalRoleAdmin, nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(editor.Contains(viewer)).To(BeTrue())
			Expect(admin.Contains(editor)).To(BeTrue())
			Expect(admin.Contains(viewer)).To(BeTrue())
		})

		It("unions the company-derived set onto the global set", func() {
			role := auth.CompanyRoleAdmin
			perms, err := auth.EffectivePermissions(auth.GlobalRoleViewer, &role)
			Expect(err).ToNot(HaveOccurred())
			Expect(perms.Has("contracts.view")).To(BeTrue())
			Expect(perms.Has("company.contracts.approve")).To(BeTrue())
		})

		It("never lets a lesser company role reduce global capabilities", func() {
			role := auth.CompanyRoleViewer
			perms, err := auth.EffectivePermissions(auth.GlobalRoleAdmin, &role)
			Expect(err).ToNot(HaveOccurred())

			globalOnly, err := auth.EffectivePermissions(auth.GlobalRoleAdmin, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(perms.Contains(globalOnly)).To(BeTrue())
		})

		It("fails fast on an unrecognized role", func() {
			_, err := auth.EffectivePermissions(auth.GlobalRole("ROOT"), nil)
			Expect(err).To(HaveOccurred())

			bogus := auth.CompanyRole("CEO")
			_, err = auth.EffectivePermissions(auth.GlobalRoleAdmin, &bogus)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("PermissionSet", func() {
		It("serializes tokens deterministically", func() {
			ps := make(auth.PermissionSet)
			ps.Add("b", "a", "c")
			Expect(ps.Tokens()).To(Equal([]string{"a", "b", "c"}))
		})
	})
})
