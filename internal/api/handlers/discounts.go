package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/api/middleware"
	"github.com/jafarshop/shopadmin/internal/service"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

// HandleCreateDiscount handles POST /app/discounts. The body may be JSON or
// a form submission.
func HandleCreateDiscount(svc *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			respondError(c, logger, &errors.ErrUnauthorized{Message: "no session"})
			return
		}

		var req service.CreateDiscountRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, logger, &errors.ErrValidation{Message: "invalid request body: " + err.Error()})
			return
		}

		discount, err := svc.CreateDiscount(c.Request.Context(), session, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"discount": discount})
	}
}
