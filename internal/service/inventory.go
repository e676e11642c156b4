package service

import (
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const (
	locationActive   = "Active"
	locationInactive = "Inactive"
)

type inventoryNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Vendor   string `json:"vendor"`
	Status   string `json:"status"`
	Variants *struct {
		Nodes []variantNode `json:"nodes"`
	} `json:"variants"`
}

type variantNode struct {
	DisplayName       string `json:"displayName"`
	InventoryQuantity *int   `json:"inventoryQuantity"`
	ContextualPricing *struct {
		Price          *moneyV2 `json:"price"`
		CompareAtPrice *moneyV2 `json:"compareAtPrice"`
	} `json:"contextualPricing"`
	InventoryItem *struct {
		ID              string `json:"id"`
		InventoryLevels struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Location struct {
						Name        string `json:"name"`
						Activatable bool   `json:"activatable"`
					} `json:"location"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"inventoryLevels"`
	} `json:"inventoryItem"`
}

// normalizeInventoryProduct flattens a product with its variants and stock
// locations. The product price is the first variant's price.
func normalizeInventoryProduct(n inventoryNode) (domain.InventoryProduct, error) {
	if n.Variants == nil {
		return domain.InventoryProduct{}, &errors.ErrMalformedResponse{Resource: "product", Field: "variants"}
	}

	product := domain.InventoryProduct{
		ID:       n.ID,
		Title:    format.TitleCase(n.Title),
		Vendor:   format.TitleCase(n.Vendor),
		Status:   format.TitleCase(n.Status),
		Variants: make([]domain.InventoryVariant, 0, len(n.Variants.Nodes)),
	}

	for _, v := range n.Variants.Nodes {
		variant, err := normalizeVariant(v)
		if err != nil {
			return domain.InventoryProduct{}, err
		}
		product.Variants = append(product.Variants, variant)
	}
	if len(product.Variants) > 0 {
		product.Price = product.Variants[0].Price
	}

	return product, nil
}

func normalizeVariant(v variantNode) (domain.InventoryVariant, error) {
	if v.ContextualPricing == nil || v.ContextualPricing.Price == nil {
		return domain.InventoryVariant{}, &errors.ErrMalformedResponse{Resource: "variant", Field: "variants.contextualPricing.price"}
	}

	price, err := format.Money(v.ContextualPricing.Price.Amount, v.ContextualPricing.Price.CurrencyCode)
	if err != nil {
		return domain.InventoryVariant{}, &errors.ErrMalformedResponse{Resource: "variant", Field: "variants.contextualPricing.price", Err: err}
	}

	variant := domain.InventoryVariant{
		DisplayName: v.DisplayName,
		Price:       price,
		Locations:   []domain.InventoryLocation{},
	}
	if cmp := v.ContextualPricing.CompareAtPrice; cmp != nil {
		variant.CompareAtPrice, err = format.Money(cmp.Amount, cmp.CurrencyCode)
		if err != nil {
			return domain.InventoryVariant{}, &errors.ErrMalformedResponse{Resource: "variant", Field: "variants.contextualPricing.compareAtPrice", Err: err}
		}
	}
	if v.InventoryQuantity != nil {
		variant.InventoryQuantity = *v.InventoryQuantity
	}

	if v.InventoryItem != nil {
		variant.InventoryItemID = v.InventoryItem.ID
		for _, edge := range v.InventoryItem.InventoryLevels.Edges {
			label := locationInactive
			if edge.Node.Location.Activatable {
				label = locationActive
			}
			variant.Locations = append(variant.Locations, domain.InventoryLocation{
				ID:          edge.Node.ID,
				Name:        edge.Node.Location.Name,
				Active:      edge.Node.Location.Activatable,
				StatusLabel: label,
			})
		}
	}

	return variant, nil
}
