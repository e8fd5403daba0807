package util

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []QueryFilter
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "implicit eq", input: "name|Orca", want: []QueryFilter{{Field: "name", Operator: OpEq, Value: "Orca"}}},
		{name: "null check", input: "description|isnull", want: []QueryFilter{{Field: "description", Operator: OpIsNull}}},
		{name: "explicit operator", input: "id|GTE|3", want: []QueryFilter{{Field: "id", Operator: OpGte, Value: "3"}}},
		{name: "in list", input: "id|in|1|2|3", want: []QueryFilter{{Field: "id", Operator: OpIn, Value: []string{"1", "2", "3"}}}},
		{
			name:  "multiple conditions",
			input: "name|like|Or%, id|lt|10",
			want: []QueryFilter{
				{Field: "name", Operator: OpLike, Value: "Or%"},
				{Field: "id", Operator: OpLt, Value: "10"},
			},
		},
		{name: "not in single value", input: "id|nin|4", want: []QueryFilter{{Field: "id", Operator: OpNin, Value: []string{"4"}}}},
		{name: "unknown operator", input: "id|between|1", wantErr: true},
		{name: "too many parts", input: "id|eq|1|2", wantErr: true},
		{name: "single part", input: "id", wantErr: true},
		{name: "missing field", input: "|Orca", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderString(t *testing.T) {
	got, err := ParseOrderString("name|ASC,id|desc")
	require.NoError(t, err)
	assert.Equal(t, []OrderClause{
		{Field: "name", Direction: OrderAsc},
		{Field: "id", Direction: OrderDesc},
	}, got)

	for _, bad := range []string{"name", "name|up", "name|asc|x", "|asc"} {
		_, err := ParseOrderString(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseListFilter(t *testing.T) {
	queryFields := []string{"id", "name"}
	orderFields := []string{"name"}

	lf, err := ParseListFilter(url.Values{
		"query":    {"name|Orca"},
		"order":    {"name|desc"},
		"page":     {"2"},
		"per_page": {"10"},
	}, queryFields, orderFields)
	require.NoError(t, err)
	assert.Len(t, lf.Filters, 1)
	assert.Len(t, lf.Order, 1)
	assert.Equal(t, 2, lf.Page)
	assert.Equal(t, 10, lf.PerPage)

	lf, err = ParseListFilter(url.Values{}, queryFields, orderFields)
	require.NoError(t, err)
	assert.Equal(t, 1, lf.Page)
	assert.Equal(t, 0, lf.PerPage)

	badInputs := []url.Values{
		{"query": {"description|x"}},
		{"order": {"id|asc"}},
		{"page": {"0"}},
		{"per_page": {"abc"}},
		{"per_page": {"501"}},
	}
	for _, v := range badInputs {
		_, err := ParseListFilter(v, queryFields, orderFields)
		assert.Error(t, err, v.Encode())
	}
}

func TestHasListParams(t *testing.T) {
	assert.False(t, HasListParams(url.Values{}))
	assert.False(t, HasListParams(url.Values{"other": {"1"}}))
	assert.True(t, HasListParams(url.Values{"page": {"1"}}))
}
