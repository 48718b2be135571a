package engine

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/storely/automation/types"
)

/**
 * evalCondition resolves the condition's dot-path field against the
 * run-time context and applies the operator. Malformed conditions
 * never raise: numeric operators evaluate to false on a non-numeric
 * operand, string operators to false on a non-string operand, and
 * an unrecognized operator is logged and evaluates to false, so a
 * badly authored workflow degrades instead of crashing the run.
 */
func evalCondition(cond types.Condition, runCtx types.Data) bool {
	resolved, found := runCtx.Resolve(cond.Field)

	switch cond.Operator {
	case "eq":
		return found && looseEqual(resolved, cond.Value)

	case "neq":
		return !found || !looseEqual(resolved, cond.Value)

	case "gt", "gte", "lt", "lte":
		if !found {
			return false
		}
		left, lok := toNumber(resolved)
		right, rok := toNumber(cond.Value)
		if !lok || !rok {
			return false
		}
		switch cond.Operator {
		case "gt":
			return left > right
		case "gte":
			return left >= right
		case "lt":
			return left < right
		default:
			return left <= right
		}

	case "contains", "not_contains":
		s, ok := resolved.(string)
		if !found || !ok {
			return false
		}
		contains := strings.Contains(s, cast.ToString(cond.Value))
		if cond.Operator == "contains" {
			return contains
		}
		return !contains

	default:
		log.Warnf("unknown condition operator %q on field %q, evaluating to false", cond.Operator, cond.Field)
		return false
	}
}

// looseEqual compares numerically when both sides coerce to a
// number, otherwise by string form. Event payloads arrive through
// JSON, so 150 and "150" should match.
func looseEqual(a, b any) bool {
	af, aok := toNumber(a)
	bf, bok := toNumber(b)
	if aok && bok {
		return af == bf
	}
	return cast.ToString(a) == cast.ToString(b)
}

func toNumber(v any) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}
