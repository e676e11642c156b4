package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
	"github.com/jafarshop/shopadmin/internal/shopify"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const dateLayout = "2006-01-02"

// CreateDiscountRequest is the discount form. Dates are RFC 3339 timestamps
// or plain YYYY-MM-DD dates; amounts are decimal strings.
type CreateDiscountRequest struct {
	Title                      string `json:"title" form:"title" validate:"required,max=255"`
	StartsAt                   string `json:"startsAt" form:"startsAt" validate:"required,discountdate"`
	EndsAt                     string `json:"endsAt" form:"endsAt" validate:"omitempty,discountdate"`
	MinimumRequirementSubtotal string `json:"minimumRequirementSubtotal" form:"minimumRequirementSubtotal" validate:"required,numeric"`
	DiscountAmount             string `json:"discountAmount" form:"discountAmount" validate:"required,numeric"`
}

type discountNode struct {
	ID                string `json:"id"`
	AutomaticDiscount struct {
		Title              string  `json:"title"`
		StartsAt           string  `json:"startsAt"`
		EndsAt             *string `json:"endsAt"`
		MinimumRequirement *struct {
			GreaterThanOrEqualToSubtotal *moneyV2 `json:"greaterThanOrEqualToSubtotal"`
		} `json:"minimumRequirement"`
		CustomerGets *struct {
			Value *struct {
				Amount *moneyV2 `json:"amount"`
			} `json:"value"`
		} `json:"customerGets"`
	} `json:"automaticDiscount"`
}

type userError struct {
	Field   []string `json:"field"`
	Code    *string  `json:"code"`
	Message string   `json:"message"`
}

// CreateDiscount creates an automatic amount-off discount that applies to all
// items once the order subtotal reaches the minimum.
func (s *AdminService) CreateDiscount(ctx context.Context, session domain.Session, req CreateDiscountRequest) (domain.Discount, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Discount{}, validationError(err)
	}

	subtotal, err := decimal.NewFromString(req.MinimumRequirementSubtotal)
	if err != nil || subtotal.IsNegative() {
		return domain.Discount{}, &errors.ErrValidation{
			Message: "invalid discount",
			Fields:  map[string]string{"minimumRequirementSubtotal": "must be zero or more"},
		}
	}
	amount, err := decimal.NewFromString(req.DiscountAmount)
	if err != nil || !amount.IsPositive() {
		return domain.Discount{}, &errors.ErrValidation{
			Message: "invalid discount",
			Fields:  map[string]string{"discountAmount": "must be greater than zero"},
		}
	}
	if req.EndsAt != "" {
		starts, _ := parseDiscountDate(req.StartsAt)
		ends, _ := parseDiscountDate(req.EndsAt)
		if !ends.After(starts) {
			return domain.Discount{}, &errors.ErrValidation{
				Message: "invalid discount",
				Fields:  map[string]string{"endsAt": "must be after startsAt"},
			}
		}
	}

	input := map[string]interface{}{
		"title":    req.Title,
		"startsAt": req.StartsAt,
		"endsAt":   nil,
		"minimumRequirement": map[string]interface{}{
			"subtotal": map[string]interface{}{
				"greaterThanOrEqualToSubtotal": subtotal.String(),
			},
		},
		"customerGets": map[string]interface{}{
			"value": map[string]interface{}{
				"discountAmount": map[string]interface{}{
					"amount":            amount.String(),
					"appliesOnEachItem": false,
				},
			},
			"items": map[string]interface{}{
				"all": true,
			},
		},
	}
	if req.EndsAt != "" {
		input["endsAt"] = req.EndsAt
	}

	resp, err := s.client.Execute(ctx, session, shopify.DiscountAutomaticBasicCreateMutation, map[string]interface{}{
		"automaticBasicDiscount": input,
	})
	if err != nil {
		return domain.Discount{}, fmt.Errorf("failed to create discount: %w", err)
	}

	root := shopify.DiscountAutomaticBasicCreateMutation.Root
	var result map[string]*struct {
		AutomaticDiscountNode *discountNode `json:"automaticDiscountNode"`
		UserErrors            []userError   `json:"userErrors"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return domain.Discount{}, &errors.ErrMalformedResponse{Resource: root, Field: "data", Err: err}
	}
	payload := result[root]
	if payload == nil {
		return domain.Discount{}, &errors.ErrMalformedResponse{Resource: root, Field: "data." + root}
	}

	if len(payload.UserErrors) > 0 {
		s.logger.Warn("Discount rejected by Shopify",
			zap.String("shop", session.Shop),
			zap.Int("user_errors", len(payload.UserErrors)),
		)
		return domain.Discount{}, userErrorsToValidation(payload.UserErrors)
	}
	if payload.AutomaticDiscountNode == nil {
		return domain.Discount{}, &errors.ErrMalformedResponse{Resource: root, Field: "automaticDiscountNode"}
	}

	discount, err := normalizeDiscount(*payload.AutomaticDiscountNode)
	if err != nil {
		return domain.Discount{}, err
	}

	s.logger.Info("Discount created",
		zap.String("shop", session.Shop),
		zap.String("discount_id", discount.ID),
	)
	return discount, nil
}

func normalizeDiscount(n discountNode) (domain.Discount, error) {
	d := n.AutomaticDiscount
	discount := domain.Discount{
		ID:       n.ID,
		Title:    d.Title,
		StartsAt: d.StartsAt,
	}
	if d.EndsAt != nil {
		discount.EndsAt = *d.EndsAt
	}

	var err error
	if d.MinimumRequirement != nil && d.MinimumRequirement.GreaterThanOrEqualToSubtotal != nil {
		m := d.MinimumRequirement.GreaterThanOrEqualToSubtotal
		if discount.MinimumSubtotal, err = format.Money(m.Amount, m.CurrencyCode); err != nil {
			return domain.Discount{}, &errors.ErrMalformedResponse{Resource: "discount", Field: "minimumRequirement", Err: err}
		}
	}
	if d.CustomerGets != nil && d.CustomerGets.Value != nil && d.CustomerGets.Value.Amount != nil {
		m := d.CustomerGets.Value.Amount
		if discount.Amount, err = format.Money(m.Amount, m.CurrencyCode); err != nil {
			return domain.Discount{}, &errors.ErrMalformedResponse{Resource: "discount", Field: "customerGets.value.amount", Err: err}
		}
	}
	return discount, nil
}

func userErrorsToValidation(userErrors []userError) *errors.ErrValidation {
	messages := make([]string, 0, len(userErrors))
	fields := make(map[string]string, len(userErrors))
	for _, ue := range userErrors {
		messages = append(messages, ue.Message)
		key := strings.Join(ue.Field, ".")
		if key == "" {
			key = "discount"
		}
		fields[key] = ue.Message
	}
	return &errors.ErrValidation{
		Message: strings.Join(messages, "; "),
		Fields:  fields,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("discountdate", func(fl validator.FieldLevel) bool {
		_, err := parseDiscountDate(fl.Field().String())
		return err == nil
	})
	return v
}

func parseDiscountDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

// validationError converts validator errors into an *ErrValidation keyed by
// JSON field name
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return &errors.ErrValidation{Message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "failed " + fe.Tag() + " validation"
	}
	return &errors.ErrValidation{Message: "invalid discount", Fields: fields}
}
