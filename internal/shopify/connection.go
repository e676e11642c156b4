package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jafarshop/shopadmin/internal/pagination"
	apperrors "github.com/jafarshop/shopadmin/pkg/errors"
)

// Edge wraps one node of an edges/node connection
type Edge[N any] struct {
	Cursor string `json:"cursor,omitempty"`
	Node   *N     `json:"node"`
}

type connection[N any] struct {
	Edges    []Edge[N]            `json:"edges"`
	Nodes    []*N                 `json:"nodes"`
	PageInfo *pagination.PageInfo `json:"pageInfo"`
}

// DecodeConnection reads data.{root} as either an edges/node or a nodes
// connection. A missing root, list, node or (when required) pageInfo is an
// *ErrMalformedResponse; an empty list is not.
func DecodeConnection[N any](data json.RawMessage, root string, requirePageInfo bool) ([]N, pagination.PageInfo, error) {
	var envelope map[string]json.RawMessage
	if len(data) == 0 || isNull(data) {
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: "data"}
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: "data", Err: err}
	}

	raw, ok := envelope[root]
	if !ok || isNull(raw) {
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: "data." + root}
	}

	var conn connection[N]
	if err := json.Unmarshal(raw, &conn); err != nil {
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: "data." + root, Err: err}
	}

	var nodes []N
	switch {
	case conn.Edges != nil:
		nodes = make([]N, 0, len(conn.Edges))
		for i, edge := range conn.Edges {
			if edge.Node == nil {
				return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: fmt.Sprintf("edges[%d].node", i)}
			}
			nodes = append(nodes, *edge.Node)
		}
	case conn.Nodes != nil:
		nodes = make([]N, 0, len(conn.Nodes))
		for i, node := range conn.Nodes {
			if node == nil {
				return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: fmt.Sprintf("nodes[%d]", i)}
			}
			nodes = append(nodes, *node)
		}
	default:
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: root + ".edges|nodes"}
	}

	var info pagination.PageInfo
	if conn.PageInfo != nil {
		info = *conn.PageInfo
	} else if requirePageInfo {
		return nil, pagination.PageInfo{}, &apperrors.ErrMalformedResponse{Resource: root, Field: root + ".pageInfo"}
	}

	return nodes, info, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
