package conditions_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Efeg35/contravo-sub006/internal/conditions"
)

var _ = Describe("Evaluate", func() {
	record := map[string]any{
		"amount":     150,
		"department": "Hukuk",
		"tags":       []any{"urgent", "legal"},
	}

	Context("with an empty condition list", func() {
		It("is vacuously true for any record", func() {
			Expect(conditions.Evaluate(nil, record)).To(BeTrue())
			Expect(conditions.Evaluate([]conditions.Condition{}, map[string]any{})).To(BeTrue())
		})
	})

	Describe("EQUALS and NOT_EQUALS", func() {
		It("treats numeric strings and numbers as equal", func() {
			conds := []conditions.Condition{
				{Field: "amount", Operator: conditions.OpEquals, Value: "150"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("compares a string value against a numeric field", func() {
			conds := []conditions.Condition{
				{Field: "amount", Operator: conditions.OpEquals, Value: 150.0},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("compares plain strings", func() {
			conds := []conditions.Condition{
				{Field: "department", Operator: conditions.OpEquals, Value: "Hukuk"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("negates with NOT_EQUALS", func() {
			conds := []conditions.Condition{
				{Field: "department", Operator: conditions.OpNotEquals, Value: "Satış"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())

			conds[0].Value = "Hukuk"
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())
		})

		It("only matches missing fields against nil values", func() {
			conds := []conditions.Condition{
				{Field: "missing", Operator: conditions.OpEquals, Value: "anything"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())

			conds[0].Value = nil
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("never equates values with no scalar representation", func() {
			nested := map[string]any{"metadata": map[string]any{"a": 1}}
			conds := []conditions.Condition{
				{Field: "metadata", Operator: conditions.OpEquals, Value: map[string]any{"b": 2}},
			}
			Expect(conditions.Evaluate(conds, nested)).To(BeFalse())

			// nor against an empty string
			conds[0].Value = ""
			Expect(conditions.Evaluate(conds, nested)).To(BeFalse())
		})
	})

	Describe("GREATER_THAN and LESS_THAN", func() {
		It("coerces numeric strings on either side", func() {
			conds := []conditions.Condition{
				{Field: "amount", Operator: conditions.OpGreaterThan, Value: "100"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("is false when the field does not exceed the value", func() {
			conds := []conditions.Condition{
				{Field: "amount", Operator: conditions.OpGreaterThan, Value: 100},
			}
			Expect(conditions.Evaluate(conds, map[string]any{"amount": "50"})).To(BeFalse())
		})

		It("never satisfies ordering against non-numeric operands", func() {
			conds := []conditions.Condition{
				{Field: "amount", Operator: conditions.OpGreaterThan, Value: "abc"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())

			conds = []conditions.Condition{
				{Field: "department", Operator: conditions.OpLessThan, Value: 10},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())
		})

		It("is false rather than panicking on a missing field", func() {
			conds := []conditions.Condition{
				{Field: "nope", Operator: conditions.OpLessThan, Value: 10},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())
		})
	})

	Describe("CONTAINS", func() {
		It("matches an element of a sequence", func() {
			conds := []conditions.Condition{
				{Field: "tags", Operator: conditions.OpContains, Value: "urgent"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())
		})

		It("matches a substring of a string field", func() {
			conds := []conditions.Condition{
				{Field: "tags", Operator: conditions.OpContains, Value: "urgent"},
			}
			Expect(conditions.Evaluate(conds, map[string]any{"tags": "urgent-memo"})).To(BeTrue())
		})

		It("is false for any other field type", func() {
			conds := []conditions.Condition{
				{Field: "tags", Operator: conditions.OpContains, Value: "urgent"},
			}
			Expect(conditions.Evaluate(conds, map[string]any{"tags": 42})).To(BeFalse())
		})

		It("matches typed string slices too", func() {
			conds := []conditions.Condition{
				{Field: "labels", Operator: conditions.OpContains, Value: "legal"},
			}
			Expect(conditions.Evaluate(conds, map[string]any{"labels": []string{"legal", "nda"}})).To(BeTrue())
		})
	})

	Describe("unknown operators", func() {
		It("fails the whole evaluation", func() {
			conds := []conditions.Condition{
				{Field: "department", Operator: conditions.OpEquals, Value: "Hukuk"},
				{Field: "amount", Operator: conditions.Operator("MATCHES"), Value: 150},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())
		})
	})

	Describe("conjunction", func() {
		It("requires every condition to hold", func() {
			conds := []conditions.Condition{
				{Field: "department", Operator: conditions.OpEquals, Value: "Hukuk"},
				{Field: "amount", Operator: conditions.OpGreaterThan, Value: 100},
				{Field: "tags", Operator: conditions.OpContains, Value: "legal"},
			}
			Expect(conditions.Evaluate(conds, record)).To(BeTrue())

			conds[1].Value = 200
			Expect(conditions.Evaluate(conds, record)).To(BeFalse())
		})
	})
})
