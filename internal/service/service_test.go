package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/shopify"
)

var testSession = domain.Session{ID: "offline_demo.myshopify.com", Shop: "demo.myshopify.com", AccessToken: "shpat_test"}

const graphQLPath = "/admin/api/2026-01/graphql.json"

// newTestService points an AdminService at handler through a real client
func newTestService(t *testing.T, handler http.Handler) *AdminService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := shopify.NewClient(config.ShopifyConfig{APIVersion: "2026-01"}, nil, shopify.WithBaseURL(server.URL))
	return NewAdminService(client, config.ListingConfig{PageSize: 20, ReportPageSize: 5}, nil)
}

// graphQL answers every GraphQL call with body and records the variables sent
func graphQL(t *testing.T, body string, calls *[]map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, graphQLPath, r.URL.Path)
		require.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))

		var req shopify.GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if calls != nil {
			*calls = append(*calls, req.Variables)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func failOnCall(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
