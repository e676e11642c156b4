// Package pagination maps inbound cursor parameters onto Shopify's
// first/after/last/before connection arguments and carries the returned
// page info back to the caller.
package pagination

import (
	"net/url"
)

const (
	AfterCursorParam  = "afterCursor"
	BeforeCursorParam = "beforeCursor"
)

// Direction is the traversal direction of a page request
type Direction int

const (
	Forward Direction = iota
	Backward
)

// PageRequest holds the cursors taken from an inbound request.
// A nil cursor means the parameter was absent or empty.
type PageRequest struct {
	AfterCursor  *string
	BeforeCursor *string
}

// FromQuery reads afterCursor and beforeCursor from a query string
func FromQuery(values url.Values) PageRequest {
	return PageRequest{
		AfterCursor:  nonEmpty(values.Get(AfterCursorParam)),
		BeforeCursor: nonEmpty(values.Get(BeforeCursorParam)),
	}
}

// Direction reports Backward whenever a before cursor is present, including
// when an after cursor was sent too.
func (r PageRequest) Direction() Direction {
	if r.BeforeCursor != nil {
		return Backward
	}
	return Forward
}

// Cursor returns the cursor that drives the request, or "" for a first page
func (r PageRequest) Cursor() string {
	if r.BeforeCursor != nil {
		return *r.BeforeCursor
	}
	if r.AfterCursor != nil {
		return *r.AfterCursor
	}
	return ""
}

// Variables are the connection arguments sent upstream
type Variables struct {
	First  *int    `json:"first"`
	After  *string `json:"after"`
	Last   *int    `json:"last"`
	Before *string `json:"before"`
}

// Variables builds the connection arguments for a page of size n
func (r PageRequest) Variables(n int) Variables {
	if r.Direction() == Backward {
		return Variables{Last: &n, Before: r.BeforeCursor}
	}
	return Variables{First: &n, After: r.AfterCursor}
}

// Map returns the variables with explicit nils so inactive arguments are
// sent as JSON null.
func (v Variables) Map() map[string]interface{} {
	m := map[string]interface{}{
		"first":  nil,
		"after":  nil,
		"last":   nil,
		"before": nil,
	}
	if v.First != nil {
		m["first"] = *v.First
	}
	if v.After != nil {
		m["after"] = *v.After
	}
	if v.Last != nil {
		m["last"] = *v.Last
	}
	if v.Before != nil {
		m["before"] = *v.Before
	}
	return m
}

// PageInfo is the connection page info envelope
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// NextPage returns the request for the page after this one, if any
func (p PageInfo) NextPage() (PageRequest, bool) {
	if !p.HasNextPage || p.EndCursor == nil {
		return PageRequest{}, false
	}
	c := *p.EndCursor
	return PageRequest{AfterCursor: &c}, true
}

// PreviousPage returns the request for the page before this one, if any
func (p PageInfo) PreviousPage() (PageRequest, bool) {
	if !p.HasPreviousPage || p.StartCursor == nil {
		return PageRequest{}, false
	}
	c := *p.StartCursor
	return PageRequest{BeforeCursor: &c}, true
}

// PageResult is one normalized page
type PageResult[T any] struct {
	Items           []T     `json:"items"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// NewPageResult attaches page info to items. Items is never nil so an empty
// page encodes as [].
func NewPageResult[T any](items []T, info PageInfo) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:           items,
		HasNextPage:     info.HasNextPage,
		HasPreviousPage: info.HasPreviousPage,
		StartCursor:     info.StartCursor,
		EndCursor:       info.EndCursor,
	}
}

// PageInfo returns the page info the result was built from
func (r PageResult[T]) PageInfo() PageInfo {
	return PageInfo{
		HasNextPage:     r.HasNextPage,
		HasPreviousPage: r.HasPreviousPage,
		StartCursor:     r.StartCursor,
		EndCursor:       r.EndCursor,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
