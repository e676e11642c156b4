package service

import (
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

type orderNode struct {
	ID                               string   `json:"id"`
	Name                             string   `json:"name"`
	CreatedAt                        string   `json:"createdAt"`
	Phone                            *string  `json:"phone"`
	Tags                             []string `json:"tags"`
	CurrentSubtotalLineItemsQuantity int      `json:"currentSubtotalLineItemsQuantity"`
	Customer                         *struct {
		ID          string  `json:"id"`
		Email       *string `json:"email"`
		DisplayName string  `json:"displayName"`
	} `json:"customer"`
	OriginalTotalPriceSet *struct {
		PresentmentMoney *moneyV2 `json:"presentmentMoney"`
	} `json:"originalTotalPriceSet"`
	DisplayFulfillmentStatus domain.FulfillmentStatus `json:"displayFulfillmentStatus"`
	DisplayFinancialStatus   *string                  `json:"displayFinancialStatus"`
}

// normalizeOrder flattens an order node into an orders-view row.
// Guest orders (customer: null) get an empty display name.
func normalizeOrder(n orderNode) (domain.OrderRow, error) {
	if n.OriginalTotalPriceSet == nil || n.OriginalTotalPriceSet.PresentmentMoney == nil {
		return domain.OrderRow{}, &errors.ErrMalformedResponse{Resource: "order", Field: "originalTotalPriceSet.presentmentMoney"}
	}
	money := n.OriginalTotalPriceSet.PresentmentMoney

	total, err := format.Money(money.Amount, money.CurrencyCode)
	if err != nil {
		return domain.OrderRow{}, &errors.ErrMalformedResponse{Resource: "order", Field: "originalTotalPriceSet.presentmentMoney", Err: err}
	}

	row := domain.OrderRow{
		ID:                n.ID,
		Name:              n.Name,
		FulfillmentStatus: n.DisplayFulfillmentStatus,
		FulfillmentBadge:  n.DisplayFulfillmentStatus.Badge(),
		Total:             total,
		TotalAmount:       money.Amount,
		CurrencyCode:      money.CurrencyCode,
		ItemCount:         n.CurrentSubtotalLineItemsQuantity,
		Tags:              n.Tags,
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}

	if n.CreatedAt != "" {
		row.CreatedAt, err = format.DateTime(n.CreatedAt)
		if err != nil {
			return domain.OrderRow{}, &errors.ErrMalformedResponse{Resource: "order", Field: "createdAt", Err: err}
		}
	}
	if n.Customer != nil {
		row.CustomerDisplayName = format.TitleCase(n.Customer.DisplayName)
		if n.Customer.Email != nil {
			row.CustomerEmail = *n.Customer.Email
		}
	}
	if n.Phone != nil {
		row.Phone = *n.Phone
	}
	if n.DisplayFinancialStatus != nil {
		row.FinancialStatus = format.TitleCase(*n.DisplayFinancialStatus)
	}

	return row, nil
}
