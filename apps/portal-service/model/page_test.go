package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		wantPage int
		wantSkip int64
	}{
		{"zero", 0, 1, 0},
		{"negative", -4, 1, 0},
		{"second page", 2, 2, 10},
		{"max int", math.MaxInt64, math.MaxInt64 / 10, (math.MaxInt64/10 - 1) * 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ListParams{Page: tt.page}
			p.Normalize(DefaultPageSize)
			assert.Equal(t, DefaultPageSize, p.PageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSkip, p.Skip())
		})
	}
}

func TestSkipForNeverNegative(t *testing.T) {
	for _, size := range []int{1, DefaultPageSize, CommentAdminPageSize, AuditPageSize} {
		assert.GreaterOrEqual(t, SkipFor(math.MaxInt64, size), int64(0))
		assert.Equal(t, int64(0), SkipFor(math.MinInt64, size))
	}
}

func TestNewPageResult(t *testing.T) {
	page := NewPageResult[string](nil, 1, 10, 21)
	assert.Equal(t, 3, page.Pages)
	assert.NotNil(t, page.Items)
}
