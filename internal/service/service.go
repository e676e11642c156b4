package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/shopify"
)

// Querier is the part of the Shopify client the admin views use
type Querier interface {
	Execute(ctx context.Context, session domain.Session, doc shopify.Document, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
	Get(ctx context.Context, session domain.Session, resource string, opts interface{}) (*shopify.RESTResponse, error)
}

// AdminService serves the embedded admin views. Each call makes exactly one
// Admin API request with the caller's session.
type AdminService struct {
	client   Querier
	pageSize int
	logger   *zap.Logger
	validate *validator.Validate

	orders      listing[orderNode, domain.OrderRow]
	customers   listing[customerNode, domain.CustomerRow]
	inventory   listing[inventoryNode, domain.InventoryProduct]
	collections listing[collectionNode, domain.CollectionRow]
	reports     listing[collectionNode, domain.CollectionRow]
}

// NewAdminService creates a new admin service
func NewAdminService(client Querier, cfg config.ListingConfig, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		client:   client,
		pageSize: cfg.PageSize,
		logger:   logger,
		validate: newValidator(),

		orders:      listing[orderNode, domain.OrderRow]{doc: shopify.OrdersQuery, pageSize: cfg.PageSize, normalize: normalizeOrder},
		customers:   listing[customerNode, domain.CustomerRow]{doc: shopify.CustomersQuery, pageSize: cfg.PageSize, normalize: normalizeCustomer},
		inventory:   listing[inventoryNode, domain.InventoryProduct]{doc: shopify.InventoryQuery, pageSize: cfg.PageSize, normalize: normalizeInventoryProduct},
		collections: listing[collectionNode, domain.CollectionRow]{doc: shopify.CollectionsQuery, pageSize: cfg.ReportPageSize, normalize: normalizeCollection},
		reports:     listing[collectionNode, domain.CollectionRow]{doc: shopify.CollectionReportQuery, pageSize: cfg.ReportPageSize, normalize: normalizeCollectionReport},
	}
}

// ListOrders returns one page of orders, newest first
func (s *AdminService) ListOrders(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.OrderRow], error) {
	return s.orders.fetch(ctx, s.client, session, req)
}

// ListCustomers returns one page of customers
func (s *AdminService) ListCustomers(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.CustomerRow], error) {
	return s.customers.fetch(ctx, s.client, session, req)
}

// ListInventory returns one page of products with variant stock
func (s *AdminService) ListInventory(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.InventoryProduct], error) {
	return s.inventory.fetch(ctx, s.client, session, req)
}

// ListCollections returns one page of collections
func (s *AdminService) ListCollections(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.CollectionRow], error) {
	return s.collections.fetch(ctx, s.client, session, req)
}

// CollectionReport returns one page of the collection report, most recently
// updated first
func (s *AdminService) CollectionReport(ctx context.Context, session domain.Session, req pagination.PageRequest) (pagination.PageResult[domain.CollectionRow], error) {
	return s.reports.fetch(ctx, s.client, session, req)
}
