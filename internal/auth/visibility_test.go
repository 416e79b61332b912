package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal/auth"
)

var _ = Describe("Visibility filter", func() {
	const headOffice = "HQ"
	alwaysVisible := []string{"HQ", "Legal"}

	It("grants unfiltered access to global admins", func() {
		scope := auth.VisibleDepartments("Sales", auth.GlobalRoleAdmin, headOffice, alwaysVisible)
		Expect(scope.All).To(BeTrue())
		Expect(scope.Allows("anything")).To(BeTrue())
	})

	It("grants unfiltered access to head-office members", func() {
		scope := auth.VisibleDepartments("HQ", auth.GlobalRoleEditor, headOffice, alwaysVisible)
		Expect(scope.All).To(BeTrue())
	})

	It("returns own department plus the always-visible set otherwise", func() {
		scope := auth.VisibleDepartments("Sales", auth.GlobalRoleEditor, headOffice, alwaysVisible)
		Expect(scope.All).To(BeFalse())
		Expect(scope.Departments).To(ConsistOf("Sales", "HQ", "Legal"))
	})

	It("deduplicates when the actor already sits in an always-visible department", func() {
		scope := auth.VisibleDepartments("Legal", auth.GlobalRoleViewer, headOffice, alwaysVisible)
		Expect(scope.Departments).To(ConsistOf("Legal", "HQ"))
	})

	It("never returns an empty set for a department-bearing actor", func() {
		scope := auth.VisibleDepartments("Ops", auth.GlobalRoleViewer, headOffice, nil)
		Expect(scope.Departments).To(ConsistOf("Ops"))
	})

	It("yields only the always-visible set for actors without a department", func() {
		scope := auth.VisibleDepartments("", auth.GlobalRoleViewer, headOffice, alwaysVisible)
		Expect(scope.All).To(BeFalse())
		Expect(scope.Departments).To(ConsistOf("HQ", "Legal"))
	})

	It("checks membership with Allows", func() {
		scope := auth.VisibleDepartments("Sales", auth.GlobalRoleViewer, headOffice, alwaysVisible)
		Expect(scope.Allows("Sales")).To(BeTrue())
		Expect(scope.Allows("Legal")).To(BeTrue())
		Expect(scope.Allows("Ops")).To(BeFalse())
	})
})
