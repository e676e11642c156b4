package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/shopify"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

// listing fetches one connection page and normalizes its nodes into rows
type listing[N any, R any] struct {
	doc       shopify.Document
	pageSize  int
	normalize func(N) (R, error)
}

func (l listing[N, R]) fetch(ctx context.Context, client Querier, session domain.Session, req pagination.PageRequest) (pagination.PageResult[R], error) {
	resp, err := client.Execute(ctx, session, l.doc, req.Variables(l.pageSize).Map())
	if err != nil {
		return pagination.PageResult[R]{}, fmt.Errorf("failed to fetch %s: %w", l.doc.Root, err)
	}

	nodes, info, err := shopify.DecodeConnection[N](resp.Data, l.doc.Root, true)
	if err != nil {
		return pagination.PageResult[R]{}, err
	}

	rows := make([]R, 0, len(nodes))
	for i, node := range nodes {
		row, err := l.normalize(node)
		if err != nil {
			return pagination.PageResult[R]{}, malformed(l.doc.Root, i, err)
		}
		rows = append(rows, row)
	}

	return pagination.NewPageResult(rows, info), nil
}

// malformed places a normalizer error under the failing item
func malformed(resource string, index int, err error) error {
	var m *errors.ErrMalformedResponse
	if stderrors.As(err, &m) {
		return &errors.ErrMalformedResponse{
			Resource: resource,
			Field:    fmt.Sprintf("%s[%d].%s", resource, index, m.Field),
			Err:      m.Err,
		}
	}
	return &errors.ErrMalformedResponse{
		Resource: resource,
		Field:    fmt.Sprintf("%s[%d]", resource, index),
		Err:      err,
	}
}

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}
