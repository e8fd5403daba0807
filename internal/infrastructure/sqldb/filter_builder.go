package sqldb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/martijn/boatapi/internal/api/util"
	"github.com/martijn/boatapi/internal/core/repository"
)

// integerColumns holds columns whose filter values are bound as int64 so
// that comparisons are numeric on every driver.
var integerColumns = map[string]bool{
	"id": true,
}

func bindValue(field string, value string) (interface{}, error) {
	if !integerColumns[field] {
		return value, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s expects an integer, got %q", repository.ErrInvalidFilter, field, value)
	}
	return n, nil
}

// BuildFilterClause builds a SQL WHERE clause from a QueryFilter. The field
// must already be validated against the caller's allowed columns.
func BuildFilterClause(f util.QueryFilter) (string, []interface{}, error) {
	var comparator string
	switch f.Operator {
	case util.OpEq:
		comparator = "="
	case util.OpNe:
		comparator = "!="
	case util.OpGt:
		comparator = ">"
	case util.OpGte:
		comparator = ">="
	case util.OpLt:
		comparator = "<"
	case util.OpLte:
		comparator = "<="
	case util.OpLike:
		comparator = "LIKE"
	case util.OpIsNull:
		return fmt.Sprintf("%s IS NULL", f.Field), nil, nil
	case util.OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", f.Field), nil, nil
	case util.OpIn, util.OpNin:
		values, ok := f.Value.([]string)
		if !ok || len(values) == 0 {
			return "", nil, fmt.Errorf("%w: operator %s on %s requires at least one value", repository.ErrInvalidFilter, f.Operator, f.Field)
		}
		placeholders := make([]string, len(values))
		args := make([]interface{}, len(values))
		for i, v := range values {
			arg, err := bindValue(f.Field, v)
			if err != nil {
				return "", nil, err
			}
			placeholders[i] = "?"
			args[i] = arg
		}
		keyword := "IN"
		if f.Operator == util.OpNin {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", f.Field, keyword, strings.Join(placeholders, ", ")), args, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported operator %s", repository.ErrInvalidFilter, f.Operator)
	}

	raw, ok := f.Value.(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: operator %s on %s requires a single value", repository.ErrInvalidFilter, f.Operator, f.Field)
	}
	if f.Operator == util.OpLike {
		return fmt.Sprintf("%s LIKE ?", f.Field), []interface{}{raw}, nil
	}
	arg, err := bindValue(f.Field, raw)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s %s ?", f.Field, comparator), []interface{}{arg}, nil
}

// ApplyFilters applies QueryFilters to a query and returns the modified query and args
func ApplyFilters(query string, args []interface{}, filters []util.QueryFilter) (string, []interface{}, error) {
	for _, f := range filters {
		clause, filterArgs, err := BuildFilterClause(f)
		if err != nil {
			return "", nil, err
		}
		query += " AND " + clause
		args = append(args, filterArgs...)
	}
	return query, args, nil
}

// ApplyOrdering applies OrderClauses to a query
func ApplyOrdering(query string, orders []util.OrderClause, defaultOrder string) string {
	if len(orders) == 0 {
		return query + " ORDER BY " + defaultOrder
	}

	orderClauses := make([]string, 0, len(orders))
	for _, o := range orders {
		direction := "ASC"
		if o.Direction == util.OrderDesc {
			direction = "DESC"
		}
		orderClauses = append(orderClauses, fmt.Sprintf("%s %s", o.Field, direction))
	}
	return query + " ORDER BY " + strings.Join(orderClauses, ", ")
}

// ApplyPagination applies page/perPage to a query
func ApplyPagination(query string, args []interface{}, page, perPage int) (string, []interface{}) {
	if perPage > 0 {
		query += " LIMIT ?"
		args = append(args, perPage)

		if page > 1 {
			offset := (page - 1) * perPage
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}
