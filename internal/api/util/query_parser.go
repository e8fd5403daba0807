package util

import (
	"fmt"
	"slices"
	"strings"
)

// QueryOperator represents a filter operator
type QueryOperator string

const (
	OpEq        QueryOperator = "eq"
	OpNe        QueryOperator = "ne"
	OpGt        QueryOperator = "gt"
	OpGte       QueryOperator = "gte"
	OpLt        QueryOperator = "lt"
	OpLte       QueryOperator = "lte"
	OpLike      QueryOperator = "like"
	OpIn        QueryOperator = "in"
	OpNin       QueryOperator = "nin"
	OpIsNull    QueryOperator = "isnull"
	OpIsNotNull QueryOperator = "isnotnull"
)

// QueryFilter represents a single filter condition
type QueryFilter struct {
	Field    string
	Operator QueryOperator
	Value    interface{} // string, []string for in/nin, nil for null checks
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// OrderClause represents a single order by clause
type OrderClause struct {
	Field     string
	Direction OrderDirection
}

var validOperators = map[string]QueryOperator{
	"eq":        OpEq,
	"ne":        OpNe,
	"gt":        OpGt,
	"gte":       OpGte,
	"lt":        OpLt,
	"lte":       OpLte,
	"like":      OpLike,
	"in":        OpIn,
	"nin":       OpNin,
	"isnull":    OpIsNull,
	"isnotnull": OpIsNotNull,
}

// ParseQueryString parses a query string into filter conditions.
// Supports formats:
//   - field|value (defaults to eq operator)
//   - field|isnull or field|isnotnull (null checks)
//   - field|operator|value (explicit operator)
//
// Conditions are comma-separated. in/nin take every remaining part as a
// value, e.g. id|in|1|2|3.
func ParseQueryString(queryStr string) ([]QueryFilter, error) {
	var filters []QueryFilter

	for _, pair := range strings.Split(queryStr, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Split(pair, "|")
		if parts[0] == "" {
			return nil, fmt.Errorf("invalid query format: %s (missing field)", pair)
		}

		switch len(parts) {
		case 1:
			return nil, fmt.Errorf("invalid query format: %s (expected field|value or field|operator|value)", pair)
		case 2:
			op := QueryOperator(strings.ToLower(parts[1]))
			if op == OpIsNull || op == OpIsNotNull {
				filters = append(filters, QueryFilter{Field: parts[0], Operator: op})
				continue
			}
			filters = append(filters, QueryFilter{Field: parts[0], Operator: OpEq, Value: parts[1]})

		default:
			op, valid := validOperators[strings.ToLower(parts[1])]
			if !valid {
				return nil, fmt.Errorf("invalid operator: %s", parts[1])
			}

			if op == OpIn || op == OpNin {
				filters = append(filters, QueryFilter{Field: parts[0], Operator: op, Value: parts[2:]})
				continue
			}
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid query format: %s (expected field|value or field|operator|value)", pair)
			}

			filters = append(filters, QueryFilter{Field: parts[0], Operator: op, Value: parts[2]})
		}
	}

	return filters, nil
}

// ParseOrderString parses an order string into order clauses.
// Format: field|direction (direction is asc or desc), comma-separated.
func ParseOrderString(orderStr string) ([]OrderClause, error) {
	var orders []OrderClause

	for _, pair := range strings.Split(orderStr, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		field, direction, ok := strings.Cut(pair, "|")
		if !ok || field == "" || strings.Contains(direction, "|") {
			return nil, fmt.Errorf("invalid order format: %s (expected field|direction)", pair)
		}

		direction = strings.ToLower(direction)
		if direction != string(OrderAsc) && direction != string(OrderDesc) {
			return nil, fmt.Errorf("invalid order direction: %s (expected asc or desc)", direction)
		}

		orders = append(orders, OrderClause{Field: field, Direction: OrderDirection(direction)})
	}

	return orders, nil
}

// ValidateFilterFields validates that all filter fields are in the allowed set
func ValidateFilterFields(filters []QueryFilter, allowedFields []string) error {
	for _, filter := range filters {
		if !slices.Contains(allowedFields, filter.Field) {
			return fmt.Errorf("invalid query field: %s (valid fields: %s)", filter.Field, strings.Join(allowedFields, ", "))
		}
	}
	return nil
}

// ValidateOrderFields validates that all order fields are in the allowed set
func ValidateOrderFields(orders []OrderClause, allowedFields []string) error {
	for _, order := range orders {
		if !slices.Contains(allowedFields, order.Field) {
			return fmt.Errorf("invalid order field: %s (valid fields: %s)", order.Field, strings.Join(allowedFields, ", "))
		}
	}
	return nil
}
