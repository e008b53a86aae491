package services

import (
	"math"

	"github.com/anonto42/friendfeed/backend/internal/models"
)

// PageLimits bounds a paginated listing.
type PageLimits struct {
	DefaultLimit int
	MaxLimit     int
}

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize applies defaults and clamps. page < 1 becomes 1; an absent limit becomes
// DefaultLimit, then limit is clamped into [1, MaxLimit]. page is capped so Offset
// cannot overflow; a capped page still lies past any real result set.
func (l PageLimits) Normalize(page, limit int, limitSet bool) PageRequest {
	if page < 1 {
		page = 1
	}
	if !limitSet {
		limit = l.DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if l.MaxLimit > 0 && limit > l.MaxLimit {
		limit = l.MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Limit: limit}
}

// TotalPages is ceil(total/limit), and 0 when total is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPagination builds the pagination block for a page of total rows.
func NewPagination(req PageRequest, total int64) models.Pagination {
	return models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
		Pages: TotalPages(total, req.Limit),
	}
}
