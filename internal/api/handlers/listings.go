package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/api/middleware"
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/service"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

// handleListing reads afterCursor/beforeCursor, fetches one page and writes
// the PageResult
func handleListing[T any](
	list func(context.Context, domain.Session, pagination.PageRequest) (pagination.PageResult[T], error),
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			respondError(c, logger, &errors.ErrUnauthorized{Message: "no session"})
			return
		}

		page, err := list(c.Request.Context(), session, pagination.FromQuery(c.Request.URL.Query()))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

// HandleListOrders handles GET /app/orders
func HandleListOrders(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListOrders, logger)
}

// HandleListCustomers handles GET /app/customers
func HandleListCustomers(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListCustomers, logger)
}

// HandleListInventory handles GET /app/inventory
func HandleListInventory(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListInventory, logger)
}

// HandleListCollections handles GET /app/collections
func HandleListCollections(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListCollections, logger)
}

// HandleCollectionReport handles GET /app/reports
func HandleCollectionReport(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.CollectionReport, logger)
}

// HandleListCustomerAccounts handles GET /app/customer-accounts
func HandleListCustomerAccounts(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListCustomerAccounts, logger)
}

// HandleListProducts handles GET /api/products
func HandleListProducts(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return handleListing(svc.ListProducts, logger)
}
