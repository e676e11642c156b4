package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/shopify"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const createdDiscount = `{"data":{"discountAutomaticBasicCreate":{"automaticDiscountNode":{"id":"gid://shopify/DiscountAutomaticNode/1","automaticDiscount":{
	"title":"Spring sale","startsAt":"2026-04-01T00:00:00Z","endsAt":null,
	"minimumRequirement":{"greaterThanOrEqualToSubtotal":{"amount":"100.0","currencyCode":"USD"}},
	"customerGets":{"value":{"amount":{"amount":"15.0","currencyCode":"USD"},"appliesOnEachItem":false}}
}},"userErrors":[]}}}`

func TestCreateDiscount(t *testing.T) {
	var sent shopify.GraphQLRequest
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		_, _ = w.Write([]byte(createdDiscount))
	}))

	got, err := svc.CreateDiscount(context.Background(), testSession, CreateDiscountRequest{
		Title:                      "Spring sale",
		StartsAt:                   "2026-04-01T00:00:00Z",
		MinimumRequirementSubtotal: "100",
		DiscountAmount:             "15",
	})
	require.NoError(t, err)
	require.Equal(t, domain.Discount{
		ID:              "gid://shopify/DiscountAutomaticNode/1",
		Title:           "Spring sale",
		StartsAt:        "2026-04-01T00:00:00Z",
		MinimumSubtotal: "$100.00",
		Amount:          "$15.00",
	}, got)

	require.Equal(t, shopify.DiscountAutomaticBasicCreateMutation.Query, sent.Query)
	input := sent.Variables["automaticBasicDiscount"].(map[string]interface{})
	require.Equal(t, "Spring sale", input["title"])
	require.Nil(t, input["endsAt"])
	require.JSONEq(t, `{"subtotal":{"greaterThanOrEqualToSubtotal":"100"}}`, mustJSON(t, input["minimumRequirement"]))
	require.JSONEq(t, `{"value":{"discountAmount":{"amount":"15","appliesOnEachItem":false}},"items":{"all":true}}`, mustJSON(t, input["customerGets"]))
}

func TestCreateDiscount_Invalid(t *testing.T) {
	valid := CreateDiscountRequest{
		Title:                      "Sale",
		StartsAt:                   "2026-04-01",
		MinimumRequirementSubtotal: "50",
		DiscountAmount:             "5.5",
	}

	tests := []struct {
		name      string
		mutate    func(r *CreateDiscountRequest)
		wantField string
	}{
		{name: "missing title", mutate: func(r *CreateDiscountRequest) { r.Title = "" }, wantField: "title"},
		{name: "bad start", mutate: func(r *CreateDiscountRequest) { r.StartsAt = "April 1st" }, wantField: "startsAt"},
		{name: "bad end", mutate: func(r *CreateDiscountRequest) { r.EndsAt = "soon" }, wantField: "endsAt"},
		{name: "end before start", mutate: func(r *CreateDiscountRequest) { r.EndsAt = "2026-03-01" }, wantField: "endsAt"},
		{name: "subtotal not a number", mutate: func(r *CreateDiscountRequest) { r.MinimumRequirementSubtotal = "fifty" }, wantField: "minimumRequirementSubtotal"},
		{name: "negative subtotal", mutate: func(r *CreateDiscountRequest) { r.MinimumRequirementSubtotal = "-1" }, wantField: "minimumRequirementSubtotal"},
		{name: "zero amount", mutate: func(r *CreateDiscountRequest) { r.DiscountAmount = "0" }, wantField: "discountAmount"},
		{name: "missing amount", mutate: func(r *CreateDiscountRequest) { r.DiscountAmount = "" }, wantField: "discountAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, failOnCall(t))
			req := valid
			tt.mutate(&req)

			_, err := svc.CreateDiscount(context.Background(), testSession, req)
			var validation *errors.ErrValidation
			require.ErrorAs(t, err, &validation)
			require.Contains(t, validation.Fields, tt.wantField)
		})
	}
}

func TestCreateDiscount_UserErrors(t *testing.T) {
	svc := newTestService(t, graphQL(t, `{"data":{"discountAutomaticBasicCreate":{"automaticDiscountNode":null,"userErrors":[
		{"field":["automaticBasicDiscount","title"],"code":"TAKEN","message":"Title must be unique"}
	]}}}`, nil))

	_, err := svc.CreateDiscount(context.Background(), testSession, CreateDiscountRequest{
		Title:                      "Sale",
		StartsAt:                   "2026-04-01",
		EndsAt:                     "2026-05-01",
		MinimumRequirementSubtotal: "0",
		DiscountAmount:             "10",
	})
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "Title must be unique", validation.Message)
	require.Equal(t, map[string]string{"automaticBasicDiscount.title": "Title must be unique"}, validation.Fields)
}

func TestCreateDiscount_MissingPayload(t *testing.T) {
	svc := newTestService(t, graphQL(t, `{"data":{"discountAutomaticBasicCreate":null}}`, nil))

	_, err := svc.CreateDiscount(context.Background(), testSession, CreateDiscountRequest{
		Title:                      "Sale",
		StartsAt:                   "2026-04-01",
		MinimumRequirementSubtotal: "0",
		DiscountAmount:             "10",
	})
	var malformed *errors.ErrMalformedResponse
	require.ErrorAs(t, err, &malformed)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
