package service

import (
	"context"
	"fmt"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/shopify"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const (
	notAvailable    = "N/A"
	defaultCurrency = "USD"

	customerAccountFields = "id,first_name,last_name,email,phone,orders_count,total_spent,currency"
	productFields         = "id,title,vendor,status,handle,product_type"
)

type customerResource struct {
	ID          int64   `json:"id"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	OrdersCount int     `json:"orders_count"`
	TotalSpent  *string `json:"total_spent"`
	Currency    *string `json:"currency"`
}

type productResource struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Vendor      string  `json:"vendor"`
	Status      string  `json:"status"`
	Handle      string  `json:"handle"`
	ProductType *string `json:"product_type"`
}

// restListOptions turns a page request into REST list parameters. The active
// cursor (before wins) is sent as page_info.
func restListOptions(req pagination.PageRequest, limit int, fields string) shopify.ListOptions {
	return shopify.ListOptions{
		Limit:    limit,
		PageInfo: req.Cursor(),
		Fields:   fields,
	}
}

// ListCustomerAccounts returns one page of the REST customers resource
func (s *AdminService) ListCustomerAccounts(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.CustomerAccount], error) {
	resp, err := s.client.Get(ctx, session, "customers", restListOptions(req, s.pageSize, customerAccountFields))
	if err != nil {
		return pagination.PageResult[domain.CustomerAccount]{}, fmt.Errorf("failed to fetch customers: %w", err)
	}

	customers, err := shopify.DecodeList[customerResource](resp, "customers")
	if err != nil {
		return pagination.PageResult[domain.CustomerAccount]{}, err
	}

	rows := make([]domain.CustomerAccount, 0, len(customers))
	for i, c := range customers {
		row, err := normalizeCustomerAccount(c)
		if err != nil {
			return pagination.PageResult[domain.CustomerAccount]{}, malformed("customers", i, err)
		}
		rows = append(rows, row)
	}

	return pagination.NewPageResult(rows, resp.Link.PageInfo()), nil
}

// ListProducts returns one page of the REST products resource
func (s *AdminService) ListProducts(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.ProductRow], error) {
	resp, err := s.client.Get(ctx, session, "products", restListOptions(req, s.pageSize, productFields))
	if err != nil {
		return pagination.PageResult[domain.ProductRow]{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	products, err := shopify.DecodeList[productResource](resp, "products")
	if err != nil {
		return pagination.PageResult[domain.ProductRow]{}, err
	}

	rows := make([]domain.ProductRow, 0, len(products))
	for _, p := range products {
		row := domain.ProductRow{
			ID:     p.ID,
			Title:  p.Title,
			Vendor: format.TitleCase(p.Vendor),
			Status: format.TitleCase(p.Status),
			Handle: p.Handle,
		}
		if p.ProductType != nil {
			row.ProductType = *p.ProductType
		}
		rows = append(rows, row)
	}

	return pagination.NewPageResult(rows, resp.Link.PageInfo()), nil
}

func normalizeCustomerAccount(c customerResource) (domain.CustomerAccount, error) {
	spent := "0"
	if c.TotalSpent != nil && *c.TotalSpent != "" {
		spent = *c.TotalSpent
	}
	currency := defaultCurrency
	if c.Currency != nil && *c.Currency != "" {
		currency = *c.Currency
	}

	total, err := format.Money(spent, currency)
	if err != nil {
		return domain.CustomerAccount{}, &errors.ErrMalformedResponse{Resource: "customer", Field: "total_spent", Err: err}
	}

	return domain.CustomerAccount{
		ID:          c.ID,
		FirstName:   orNotAvailable(c.FirstName),
		LastName:    orNotAvailable(c.LastName),
		Email:       orNotAvailable(c.Email),
		Phone:       orNotAvailable(c.Phone),
		OrdersCount: c.OrdersCount,
		TotalSpent:  total,
	}, nil
}

func orNotAvailable(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}
