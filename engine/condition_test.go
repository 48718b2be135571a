package engine

import (
	"testing"

	"github.com/storely/automation/types"
	"github.com/stretchr/testify/assert"
)

func TestEvalCondition(t *testing.T) {
	ctx := types.Data{
		"amount": 150,
		"email":  "ada@example.com",
		"order": map[string]any{
			"number": 1042,
			"customer": map[string]any{
				"name": "Ada",
			},
		},
		"vip": true,
	}

	cases := []struct {
		name     string
		cond     types.Condition
		expected bool
	}{
		{"eq number", types.Condition{Field: "amount", Operator: "eq", Value: 150}, true},
		{"eq number as string", types.Condition{Field: "amount", Operator: "eq", Value: "150"}, true},
		{"eq mismatch", types.Condition{Field: "amount", Operator: "eq", Value: 151}, false},
		{"eq string", types.Condition{Field: "order.customer.name", Operator: "eq", Value: "Ada"}, true},
		{"eq unresolved path", types.Condition{Field: "order.missing.name", Operator: "eq", Value: "Ada"}, false},
		{"neq", types.Condition{Field: "amount", Operator: "neq", Value: 100}, true},
		{"neq equal", types.Condition{Field: "amount", Operator: "neq", Value: 150}, false},
		{"neq unresolved path", types.Condition{Field: "nope", Operator: "neq", Value: "x"}, true},
		{"gt true", types.Condition{Field: "amount", Operator: "gt", Value: 100}, true},
		{"gt false", types.Condition{Field: "amount", Operator: "gt", Value: 200}, false},
		{"gt nested", types.Condition{Field: "order.number", Operator: "gt", Value: 1000}, true},
		{"gt non-numeric operand", types.Condition{Field: "email", Operator: "gt", Value: 10}, false},
		{"gt bool operand", types.Condition{Field: "vip", Operator: "gt", Value: 0}, false},
		{"gt unresolved", types.Condition{Field: "missing", Operator: "gt", Value: 1}, false},
		{"gte boundary", types.Condition{Field: "amount", Operator: "gte", Value: 150}, true},
		{"lt", types.Condition{Field: "amount", Operator: "lt", Value: 200}, true},
		{"lte boundary", types.Condition{Field: "amount", Operator: "lte", Value: 150}, true},
		{"contains", types.Condition{Field: "email", Operator: "contains", Value: "@example"}, true},
		{"contains miss", types.Condition{Field: "email", Operator: "contains", Value: "@other"}, false},
		{"contains non-string", types.Condition{Field: "amount", Operator: "contains", Value: "1"}, false},
		{"not_contains", types.Condition{Field: "email", Operator: "not_contains", Value: "@other"}, true},
		{"not_contains non-string", types.Condition{Field: "amount", Operator: "not_contains", Value: "9"}, false},
		{"unknown operator fails closed", types.Condition{Field: "amount", Operator: "matches", Value: 150}, false},
		{"empty operator fails closed", types.Condition{Field: "amount", Operator: "", Value: 150}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, evalCondition(tc.cond, ctx))
		})
	}
}
