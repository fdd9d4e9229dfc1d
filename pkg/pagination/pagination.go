// Package pagination implements the uniform page/limit/q contract shared by
// every list endpoint.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Pagination carries the three logical list inputs. Limit <= 0 is the
// sentinel for "return every matching row, no slicing".
type Pagination struct {
	Page  int
	Limit int
	Query string
}

func Default() Pagination {
	return Pagination{Page: DefaultPage, Limit: DefaultLimit}
}

// FromQuery parses page/limit/q from a query string, applying defaults and
// clamping page to a minimum of 1. Unparseable numbers fall back to the
// defaults rather than erroring, matching the lenient contract of the API.
func FromQuery(values url.Values) Pagination {
	p := Default()

	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			p.Page = page
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			p.Limit = limit
		}
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	p.Query = values.Get("q")
	return p
}

// Sliced reports whether offset/limit slicing applies.
func (p Pagination) Sliced() bool {
	return p.Limit > 0
}

// Offset is the number of rows to skip: (page - 1) * limit.
func (p Pagination) Offset() int {
	if !p.Sliced() {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the list-response metadata block. Total always counts the full
// filtered set, independent of slicing.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func (p Pagination) Meta(total int) Meta {
	return Meta{Page: p.Page, Limit: p.Limit, Total: total}
}
