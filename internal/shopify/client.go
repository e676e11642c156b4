package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/domain"
	apperrors "github.com/jafarshop/shopadmin/pkg/errors"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// Client calls the Shopify Admin API on behalf of a session. It holds no
// per-shop state; shop and token come with every call.
type Client struct {
	apiVersion string
	baseURL    string // overrides https://{shop} when set
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sends every request to baseURL instead of https://{shop}
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Shopify Admin API client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeShopDomain removes https://, http://, and trailing slashes
func NormalizeShopDomain(shop string) string {
	shop = strings.TrimSpace(shop)
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	shop = strings.TrimSuffix(shop, "/")
	return strings.ToLower(shop)
}

// endpoint returns the Admin API URL for path (e.g. "graphql.json")
func (c *Client) endpoint(shop, path string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + NormalizeShopDomain(shop)
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", base, c.apiVersion, path)
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Execute runs one GraphQL document against the session's shop
func (c *Client) Execute(ctx context.Context, session domain.Session, doc Document, variables map[string]interface{}) (*GraphQLResponse, error) {
	op := doc.Name
	start := time.Now()

	jsonData, err := json.Marshal(GraphQLRequest{
		Query:     doc.Query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(session.Shop, "graphql.json"), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, session.AccessToken)

	body, _, err := c.do(req, session.Shop, op, start)
	if err != nil {
		return nil, err
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, &apperrors.ErrMalformedResponse{Resource: op, Err: err}
	}

	if len(graphQLResp.Errors) > 0 {
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, e := range graphQLResp.Errors {
			errorMessages[i] = e.Message
		}
		upstreamErr := &apperrors.ErrUpstream{
			Operation:  op,
			StatusCode: http.StatusOK,
			Message:    "graphQL errors: " + strings.Join(errorMessages, "; "),
			Throttled:  isThrottled(graphQLResp.Errors),
		}
		c.logger.Warn("Shopify GraphQL errors",
			zap.String("shop", session.Shop),
			zap.String("operation", op),
			zap.Strings("errors", errorMessages),
		)
		return nil, upstreamErr
	}

	return &graphQLResp, nil
}

// do sends req and returns the body of a 200 response. Anything else is an
// *ErrUpstream.
func (c *Client) do(req *http.Request, shop, op string, start time.Time) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify request failed",
			zap.String("shop", shop),
			zap.String("operation", op),
			zap.Error(err),
		)
		return nil, nil, &apperrors.ErrUpstream{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &apperrors.ErrUpstream{Operation: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("Shopify request",
		zap.String("shop", shop),
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Shopify API error",
			zap.String("shop", shop),
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil, &apperrors.ErrUpstream{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(body)), 512),
			Throttled:  resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	return body, resp.Header, nil
}

func isThrottled(errs []GraphQLError) bool {
	for _, e := range errs {
		if strings.Contains(strings.ToLower(e.Message), "throttled") {
			return true
		}
		if code, ok := e.Extensions["code"].(string); ok && strings.EqualFold(code, "THROTTLED") {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
