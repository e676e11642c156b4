package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	apperrors "github.com/jafarshop/shopadmin/pkg/errors"
)

// ListOptions are the query parameters accepted by REST list resources.
// Shopify rejects any other filter once page_info is present.
type ListOptions struct {
	Limit    int    `url:"limit,omitempty"`
	PageInfo string `url:"page_info,omitempty"`
	Fields   string `url:"fields,omitempty"`
}

// RESTResponse is the body of a REST call and its pagination links
type RESTResponse struct {
	Body json.RawMessage
	Link LinkPage
}

// Get fetches https://{shop}/admin/api/{version}/{resource}.json
func (c *Client) Get(ctx context.Context, session domain.Session, resource string, opts interface{}) (*RESTResponse, error) {
	start := time.Now()

	u := c.endpoint(session.Shop, resource+".json")
	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s options: %w", resource, err)
		}
		if enc := v.Encode(); enc != "" {
			u += "?" + enc
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, session.AccessToken)

	body, header, err := c.do(req, session.Shop, resource, start)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &apperrors.ErrMalformedResponse{Resource: resource, Field: "body"}
	}

	return &RESTResponse{
		Body: body,
		Link: ParseLink(header.Get("Link")),
	}, nil
}

// DecodeList reads the array stored under key (the resource's plural name)
func DecodeList[T any](resp *RESTResponse, key string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &apperrors.ErrMalformedResponse{Resource: key, Err: err}
	}
	raw, ok := envelope[key]
	if !ok || isNull(raw) {
		return nil, &apperrors.ErrMalformedResponse{Resource: key, Field: key}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &apperrors.ErrMalformedResponse{Resource: key, Field: key, Err: err}
	}
	return items, nil
}

// LinkPage holds the page_info tokens of a REST Link header
type LinkPage struct {
	Next     string
	Previous string
}

var linkPattern = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="?(next|previous)"?`)

// ParseLink extracts page_info for rel=next and rel=previous
func ParseLink(header string) LinkPage {
	var page LinkPage
	for _, m := range linkPattern.FindAllStringSubmatch(header, -1) {
		u, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		token := u.Query().Get("page_info")
		switch m[2] {
		case "next":
			page.Next = token
		case "previous":
			page.Previous = token
		}
	}
	return page
}

// PageInfo expresses the links as a connection page info envelope
func (p LinkPage) PageInfo() pagination.PageInfo {
	info := pagination.PageInfo{
		HasNextPage:     p.Next != "",
		HasPreviousPage: p.Previous != "",
	}
	if p.Previous != "" {
		prev := p.Previous
		info.StartCursor = &prev
	}
	if p.Next != "" {
		next := p.Next
		info.EndCursor = &next
	}
	return info
}
