package shared

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name          string
		q, page, lim  string
		expectedPage  int
		expectedLimit int
		expectedQ     string
	}{
		{"defaults", "", "", "", 1, 10, ""},
		{"explicit values", "acme", "3", "25", 3, 25, "acme"},
		{"non-numeric page", "", "abc", "", 1, 10, ""},
		{"zero page", "", "0", "", 1, 10, ""},
		{"negative limit", "", "", "-5", 1, 10, ""},
		{"limit clamped", "", "", "1000", 1, MaxLimit, ""},
		{"search trimmed", "  B-1  ", "", "", 1, 10, "B-1"},
		{"fractional page", "", "2.5", "", 1, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilter(tt.q, tt.page, tt.lim)
			assert.Equal(t, tt.expectedPage, f.Page)
			assert.Equal(t, tt.expectedLimit, f.Limit)
			assert.Equal(t, tt.expectedQ, f.Search)
		})
	}
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Filter{Page: 3, Limit: 10}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, Filter{Page: 2, Limit: 10})
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, int64(21), p.Total)
	assert.Equal(t, 2, p.Page)

	empty := NewPaginated[int](nil, 0, DefaultFilter())
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pages)
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewDomainError(CodeNotFound, "Bill not found"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsDuplicateKey(err))

	dup := NewFieldError(CodeDuplicateKey, "Duplicate bill number", "billNumber", "This bill number already exists")
	assert.True(t, IsDuplicateKey(dup))
	assert.Equal(t, "billNumber", dup.Fields[0].Field)
}

func TestAccountScoped_OwnedBy(t *testing.T) {
	owner := uuid.New()
	a := NewAccountScoped(owner)
	assert.True(t, a.OwnedBy(owner))
	assert.False(t, a.OwnedBy(uuid.New()))
	assert.NotEqual(t, uuid.Nil, a.ID)
}

func TestAmount_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Total Amount `json:"total"`
	}{Total: NewAmount(decimal.RequireFromString("118.50"))})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"total":118.5}`, string(raw))

	var in struct {
		Rate Amount `json:"rate"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"rate":"12.25"}`), &in))
	assert.Equal(t, "12.25", in.Rate.String())
	assert.NoError(t, json.Unmarshal([]byte(`{"rate":7}`), &in))
	assert.Equal(t, "7", in.Rate.String())
}
