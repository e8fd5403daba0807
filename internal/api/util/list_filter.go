package util

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListFilter contains common filtering/pagination options for list endpoints
type ListFilter struct {
	// Filters parsed from query parameter
	Filters []QueryFilter
	// Order by clauses parsed from order parameter
	Order []OrderClause
	// Pagination; PerPage 0 means no limit
	Page    int
	PerPage int
}

// MaxPerPage caps the per_page parameter.
const MaxPerPage = 500

// ListParams lists the query parameters understood by ParseListFilter.
var ListParams = []string{"query", "order", "page", "per_page"}

// HasListParams reports whether any list parameter is present in values.
func HasListParams(values url.Values) bool {
	for _, p := range ListParams {
		if values.Has(p) {
			return true
		}
	}
	return false
}

// ParseListFilter reads query, order, page and per_page from values and
// checks the referenced fields against the allowed sets.
func ParseListFilter(values url.Values, queryFields, orderFields []string) (ListFilter, error) {
	var lf ListFilter

	filters, err := ParseQueryString(values.Get("query"))
	if err != nil {
		return lf, err
	}
	if err := ValidateFilterFields(filters, queryFields); err != nil {
		return lf, err
	}

	orders, err := ParseOrderString(values.Get("order"))
	if err != nil {
		return lf, err
	}
	if err := ValidateOrderFields(orders, orderFields); err != nil {
		return lf, err
	}

	page, err := positiveInt(values, "page", 1)
	if err != nil {
		return lf, err
	}
	perPage, err := positiveInt(values, "per_page", 0)
	if err != nil {
		return lf, err
	}
	if perPage > MaxPerPage {
		return lf, fmt.Errorf("per_page must not exceed %d", MaxPerPage)
	}

	lf.Filters = filters
	lf.Order = orders
	lf.Page = page
	lf.PerPage = perPage
	return lf, nil
}

func positiveInt(values url.Values, key string, def int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}
