package conditions

import (
	"reflect"
	"strconv"
	"strings"
)

type Operator string

const (
	OpEquals      Operator = "EQUALS"
	OpNotEquals   Operator = "NOT_EQUALS"
	OpGreaterThan Operator = "GREATER_THAN"
	OpLessThan    Operator = "LESS_THAN"
	OpContains    Operator = "CONTAINS"
)

// Condition is a single field/operator/value predicate. A list of conditions
// is AND-combined by Evaluate.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// Evaluate applies every condition against the record and returns the logical
// AND. It never panics: missing fields read as nil, non-numeric operands make
// ordering operators false, and an unknown operator fails the whole
// evaluation. An empty condition list is vacuously true.
func Evaluate(conds []Condition, record map[string]any) bool {
	for _, cond := range conds {
		if !evaluateOne(cond, record[cond.Field]) {
			return false
		}
	}
	return true
}

func evaluateOne(cond Condition, fieldValue any) bool {
	switch cond.Operator {
	case OpEquals:
		return looseEqual(fieldValue, cond.Value)
	case OpNotEquals:
		return !looseEqual(fieldValue, cond.Value)
	case OpGreaterThan:
		a, aok := toNumber(fieldValue)
		b, bok := toNumber(cond.Value)
		return aok && bok && a > b
	case OpLessThan:
		a, aok := toNumber(fieldValue)
		b, bok := toNumber(cond.Value)
		return aok && bok && a < b
	case OpContains:
		return contains(fieldValue, cond.Value)
	default:
		// fail closed on operators we do not understand
		return false
	}
}

// looseEqual intentionally treats numeric strings and numbers as equal
// ("5" == 5). Downstream workflow conditions depend on this permissiveness,
// so it must not be tightened.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, aok := toNumber(a); aok {
		if bn, bok := toNumber(b); bok {
			return an == bn
		}
	}
	as, aok := stringify(a)
	bs, bok := stringify(b)
	// fail closed on values with no scalar representation (maps, structs)
	return aok && bok && as == bs
}

func contains(field, value any) bool {
	switch f := field.(type) {
	case string:
		needle, ok := stringify(value)
		return ok && strings.Contains(f, needle)
	case nil:
		return false
	}

	rv := reflect.ValueOf(field)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if looseEqual(rv.Index(i).Interface(), value) {
				return true
			}
		}
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// stringify reduces a scalar to its comparable string form. The second
// return is false for anything that is not a string, number or bool.
func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := toNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
