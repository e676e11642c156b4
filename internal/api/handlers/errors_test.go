package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/pkg/errors"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "unauthorized", err: &errors.ErrUnauthorized{}, wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthorized},
		{name: "validation", err: &errors.ErrValidation{}, wantStatus: http.StatusUnprocessableEntity, wantCode: CodeValidation},
		{name: "upstream", err: &errors.ErrUpstream{StatusCode: 500}, wantStatus: http.StatusBadGateway, wantCode: CodeUpstream},
		{name: "wrapped upstream", err: fmt.Errorf("failed to fetch orders: %w", &errors.ErrUpstream{}), wantStatus: http.StatusBadGateway, wantCode: CodeUpstream},
		{name: "throttled", err: &errors.ErrUpstream{StatusCode: 429, Throttled: true}, wantStatus: http.StatusTooManyRequests, wantCode: CodeRateLimited},
		{name: "malformed", err: &errors.ErrMalformedResponse{Resource: "orders"}, wantStatus: http.StatusBadGateway, wantCode: CodeMalformedUpstream},
		{name: "other", err: stderrors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := errorStatus(tt.err)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/app/discounts", nil)

		respondError(c, zap.NewNop(), &errors.ErrValidation{Message: "invalid discount", Fields: map[string]string{"title": "failed required validation"}})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.JSONEq(t, `{"error":"validation_failed","message":"invalid discount","fields":{"title":"failed required validation"}}`, w.Body.String())
	})

	t.Run("internal message hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/app/orders", nil)

		respondError(c, zap.NewNop(), stderrors.New("dial tcp: secret detail"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, map[string]string{"error": CodeInternal, "message": "internal server error"}, body)
	})
}
