package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/domain"
	apperrors "github.com/jafarshop/shopadmin/pkg/errors"
)

var testSession = domain.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_test"}

func setup(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(config.ShopifyConfig{APIVersion: "2026-01"}, nil, WithBaseURL(server.URL))
	return client, mux
}

func TestNormalizeShopDomain(t *testing.T) {
	require.Equal(t, "demo.myshopify.com", NormalizeShopDomain("https://Demo.myshopify.com/"))
	require.Equal(t, "demo.myshopify.com", NormalizeShopDomain(" http://demo.myshopify.com"))
	require.Equal(t, "demo.myshopify.com", NormalizeShopDomain("demo.myshopify.com"))
}

func TestClient_EndpointWithoutBaseURL(t *testing.T) {
	client := NewClient(config.ShopifyConfig{APIVersion: "2026-01"}, nil)
	require.Equal(t, "https://demo.myshopify.com/admin/api/2026-01/graphql.json", client.endpoint("https://demo.myshopify.com/", "graphql.json"))
	require.Equal(t, "https://demo.myshopify.com/admin/api/2026-01/customers.json", client.endpoint("demo.myshopify.com", "customers.json"))
}

func TestClient_Execute(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/admin/api/2026-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, OrdersQuery.Query, req.Query)
		require.Equal(t, float64(20), req.Variables["first"])
		require.Contains(t, req.Variables, "before")
		require.Nil(t, req.Variables["before"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"orders":{"nodes":[],"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}}}}`)
	})

	resp, err := client.Execute(context.Background(), testSession, OrdersQuery, map[string]interface{}{
		"first": 20, "after": nil, "last": nil, "before": nil,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"orders":{"nodes":[],"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}}}`, string(resp.Data))
}

func TestClient_Execute_Failures(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantUpstream  bool
		wantStatus    int
		wantThrottled bool
		wantMalformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantUpstream: true, wantStatus: 500},
		{name: "unauthorized token", status: http.StatusUnauthorized, body: `{"errors":"[API] Invalid API key"}`, wantUpstream: true, wantStatus: 401},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, wantUpstream: true, wantStatus: 429, wantThrottled: true},
		{
			name:          "graphql throttled",
			status:        http.StatusOK,
			body:          `{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`,
			wantUpstream:  true,
			wantStatus:    200,
			wantThrottled: true,
		},
		{
			name:         "graphql field error",
			status:       http.StatusOK,
			body:         `{"errors":[{"message":"Field 'foo' doesn't exist on type 'Order'"}]}`,
			wantUpstream: true,
			wantStatus:   200,
		},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantMalformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mux := setup(t)
			mux.HandleFunc("/admin/api/2026-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			resp, err := client.Execute(context.Background(), testSession, OrdersQuery, nil)
			require.Error(t, err)
			require.Nil(t, resp)

			var upstream *apperrors.ErrUpstream
			var malformed *apperrors.ErrMalformedResponse
			require.Equal(t, tt.wantUpstream, errors.As(err, &upstream))
			require.Equal(t, tt.wantMalformed, errors.As(err, &malformed))
			if tt.wantUpstream {
				require.Equal(t, tt.wantStatus, upstream.StatusCode)
				require.Equal(t, tt.wantThrottled, upstream.Throttled)
				require.Equal(t, "listOrders", upstream.Operation)
			}
		})
	}
}

func TestClient_Execute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(config.ShopifyConfig{APIVersion: "2026-01"}, nil, WithBaseURL(server.URL))
	_, err := client.Execute(context.Background(), testSession, OrdersQuery, nil)

	var upstream *apperrors.ErrUpstream
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, 0, upstream.StatusCode)
	require.Error(t, upstream.Unwrap())
}

func TestClient_Execute_CanceledContext(t *testing.T) {
	client, mux := setup(t)
	mux.HandleFunc("/admin/api/2026-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Execute(ctx, testSession, OrdersQuery, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_Get(t *testing.T) {
	client, mux := setup(t)

	mux.HandleFunc("/admin/api/2026-01/customers.json", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		require.Equal(t, "abc", r.URL.Query().Get("page_info"))
		require.False(t, r.URL.Query().Has("fields"))

		w.Header().Set("Link", `<https://demo.myshopify.com/admin/api/2026-01/customers.json?limit=50&page_info=prev1>; rel="previous", <https://demo.myshopify.com/admin/api/2026-01/customers.json?limit=50&page_info=next1>; rel="next"`)
		fmt.Fprint(w, `{"customers":[{"id":1},{"id":2}]}`)
	})

	resp, err := client.Get(context.Background(), testSession, "customers", &ListOptions{Limit: 50, PageInfo: "abc"})
	require.NoError(t, err)
	require.Equal(t, LinkPage{Next: "next1", Previous: "prev1"}, resp.Link)

	type row struct {
		ID int64 `json:"id"`
	}
	rows, err := DecodeList[row](resp, "customers")
	require.NoError(t, err)
	require.Equal(t, []row{{ID: 1}, {ID: 2}}, rows)
}

func TestClient_Get_Failures(t *testing.T) {
	client, mux := setup(t)
	mux.HandleFunc("/admin/api/2026-01/products.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/admin/api/2026-01/customers.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"customers":`)
	})

	_, err := client.Get(context.Background(), testSession, "products", nil)
	var upstream *apperrors.ErrUpstream
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusBadGateway, upstream.StatusCode)

	_, err = client.Get(context.Background(), testSession, "customers", nil)
	var malformed *apperrors.ErrMalformedResponse
	require.ErrorAs(t, err, &malformed)
}

func TestDecodeList_MissingKey(t *testing.T) {
	tests := map[string]string{
		"wrong key": `{"products":[]}`,
		"null list": `{"customers":null}`,
		"not array": `{"customers":{"id":1}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeList[map[string]interface{}](&RESTResponse{Body: json.RawMessage(body)}, "customers")
			var malformed *apperrors.ErrMalformedResponse
			require.ErrorAs(t, err, &malformed)
		})
	}

	items, err := DecodeList[map[string]interface{}](&RESTResponse{Body: json.RawMessage(`{"customers":[]}`)}, "customers")
	require.NoError(t, err)
	require.Empty(t, items)
	require.NotNil(t, items)
}

func TestParseLink(t *testing.T) {
	require.Equal(t, LinkPage{}, ParseLink(""))
	require.Equal(t,
		LinkPage{Next: "n2"},
		ParseLink(`<https://demo.myshopify.com/admin/api/2026-01/products.json?page_info=n2&limit=5>; rel="next"`),
	)

	info := LinkPage{Previous: "p"}.PageInfo()
	require.False(t, info.HasNextPage)
	require.True(t, info.HasPreviousPage)
	require.Equal(t, "p", *info.StartCursor)
	require.Nil(t, info.EndCursor)
}
