package domain

import (
	"time"
)

// Session is an authenticated shop's Admin API credential
type Session struct {
	ID          string
	Shop        string // e.g. demo.myshopify.com
	AccessToken string
	Scope       string
	IsOnline    bool
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfflineSessionID returns the storage key of a shop's offline session
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// IsExpired reports whether the session has an expiry in the past
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// OrderRow is one row of the orders view
type OrderRow struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	CreatedAt           string            `json:"createdAt"`
	CustomerDisplayName string            `json:"customerDisplayName"`
	CustomerEmail       string            `json:"customerEmail,omitempty"`
	Phone               string            `json:"phone,omitempty"`
	FulfillmentStatus   FulfillmentStatus `json:"fulfillmentStatus"`
	FulfillmentBadge    Badge             `json:"fulfillmentBadge"`
	FinancialStatus     string            `json:"financialStatus"`
	Total               string            `json:"total"`
	TotalAmount         string            `json:"totalAmount"`
	CurrencyCode        string            `json:"currencyCode"`
	ItemCount           int               `json:"itemCount"`
	Tags                []string          `json:"tags"`
}

// CustomerRow is one row of the customers view
type CustomerRow struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// InventoryProduct is a product with its variants and stock locations
type InventoryProduct struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Vendor   string             `json:"vendor"`
	Status   string             `json:"status"`
	Price    string             `json:"price"` // first variant's price, empty without variants
	Variants []InventoryVariant `json:"variants"`
}

type InventoryVariant struct {
	InventoryItemID   string              `json:"inventoryItemId"`
	DisplayName       string              `json:"displayName"`
	Price             string              `json:"price"`
	CompareAtPrice    string              `json:"compareAtPrice,omitempty"`
	InventoryQuantity int                 `json:"inventoryQuantity"`
	Locations         []InventoryLocation `json:"locations"`
}

type InventoryLocation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	StatusLabel string `json:"statusLabel"`
}

// CollectionRow is one row of the collections view and the collection report
type CollectionRow struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Handle       string `json:"handle"`
	UpdatedAt    string `json:"updatedAt"`
	SortOrder    string `json:"sortOrder"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ImageAltText string `json:"imageAltText,omitempty"`
}

// CustomerAccount is one row of the REST customer accounts table
type CustomerAccount struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	OrdersCount int    `json:"ordersCount"`
	TotalSpent  string `json:"totalSpent"`
}

// ProductRow is one product from the REST products resource
type ProductRow struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Vendor      string `json:"vendor"`
	Status      string `json:"status"`
	Handle      string `json:"handle"`
	ProductType string `json:"productType,omitempty"`
}

// Discount is an automatic basic discount as created in Shopify
type Discount struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	StartsAt        string `json:"startsAt"`
	EndsAt          string `json:"endsAt,omitempty"`
	MinimumSubtotal string `json:"minimumSubtotal,omitempty"`
	Amount          string `json:"amount,omitempty"`
}
