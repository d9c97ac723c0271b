package entities

import (
	"math"
	"strings"
	"time"
)

const (
	// DefaultPageLimit is used when a list request does not set a limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps list page sizes.
	MaxPageLimit = 100
	// MaxPage keeps the row offset of the last page representable.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// PageRequest carries offset pagination and free-text search.
type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit into their allowed ranges.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Page is a slice of results plus pagination metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// PageMeta describes where a page sits in the full result.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPage wraps items with metadata computed from the request and total.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	req = req.Normalize()
	if items == nil {
		items = make([]T, 0)
	}
	pages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Page[T]{
		Items: items,
		Meta:  PageMeta{Page: req.Page, Limit: req.Limit, Total: total, TotalPages: pages},
	}
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// normalizeToken lowercases a value and folds separators to underscores.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
