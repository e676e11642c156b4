package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFunc func(ctx context.Context, r *http.Request) (domain.Session, error)

func (f authFunc) Authenticate(ctx context.Context, r *http.Request) (domain.Session, error) {
	return f(ctx, r)
}

func TestAuthMiddleware(t *testing.T) {
	session := domain.Session{ID: "offline_demo.myshopify.com", Shop: "demo.myshopify.com", AccessToken: "shpat_1"}

	tests := []struct {
		name       string
		auth       authFunc
		wantStatus int
	}{
		{
			name: "authenticated",
			auth: func(context.Context, *http.Request) (domain.Session, error) {
				return session, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "rejected",
			auth: func(context.Context, *http.Request) (domain.Session, error) {
				return domain.Session{}, &errors.ErrUnauthorized{Message: "session expired"}
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestIDMiddleware(), AuthMiddleware(tt.auth, zap.NewNop()))
			router.GET("/app/orders", func(c *gin.Context) {
				got, ok := GetSessionFromContext(c)
				require.True(t, ok)
				require.Equal(t, session, got)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/orders", nil))
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.Equal(t, "unauthorized", body["error"])
				require.Equal(t, "session expired", body["message"])
			}
		})
	}
}

func TestGetSessionFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetSessionFromContext(c)
	require.False(t, ok)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	require.NoError(t, err)
	require.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}
