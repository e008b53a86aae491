package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	limits := PageLimits{DefaultLimit: 20, MaxLimit: 50}

	tests := []struct {
		name     string
		page     int
		limit    int
		limitSet bool
		want     PageRequest
	}{
		{"defaults", 0, 0, false, PageRequest{Page: 1, Limit: 20}},
		{"page zero becomes one", 0, 10, true, PageRequest{Page: 1, Limit: 10}},
		{"negative page", -4, 10, true, PageRequest{Page: 1, Limit: 10}},
		{"limit clamped to max", 2, 1000, true, PageRequest{Page: 2, Limit: 50}},
		{"explicit zero limit", 1, 0, true, PageRequest{Page: 1, Limit: 1}},
		{"negative limit", 1, -3, true, PageRequest{Page: 1, Limit: 1}},
		{"within bounds", 3, 7, true, PageRequest{Page: 3, Limit: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, limits.Normalize(tt.page, tt.limit, tt.limitSet))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
}

func TestNormalizeCapsHugePage(t *testing.T) {
	limits := PageLimits{DefaultLimit: 20, MaxLimit: 50}

	for _, limit := range []int{1, 7, 20, 50} {
		req := limits.Normalize(math.MaxInt, limit, true)
		assert.Equal(t, math.MaxInt/limit, req.Page)
		assert.Positive(t, req.Offset())
		assert.LessOrEqual(t, req.Offset(), math.MaxInt-limit)
	}

	req := limits.Normalize(4611686018427387905, 20, true)
	assert.Greater(t, req.Offset(), 1<<40)
}

func TestTotalPagesIsCeil(t *testing.T) {
	for total := int64(0); total <= 60; total++ {
		for _, limit := range []int{1, 2, 3, 7, 20, 50} {
			pages := TotalPages(total, limit)
			if total == 0 {
				assert.Zero(t, pages)
				continue
			}
			assert.Positive(t, pages)
			assert.GreaterOrEqual(t, int64(pages*limit), total)
			assert.Less(t, int64((pages-1)*limit), total)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(PageRequest{Page: 2, Limit: 2}, 5)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 2, p.Limit)
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, 3, p.Pages)
}
