package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderline/internal/types"
)

func TestJSON_WritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rec, req, http.StatusOK, map[string]any{"ok": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestJSON_UnmarshalableDataFallsBackTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// Channels cannot be marshalled.
	JSON(rec, req, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"failed to marshal response"}`, rec.Body.String())
}

func TestError_AppErrorMapsStatusAndMessage(t *testing.T) {
	cases := []struct {
		name       string
		err        *types.AppError
		wantStatus int
		wantBody   string
	}{
		{
			"auth failure",
			types.NewAppError(types.ErrCodeAuthSignatureInvalid, "Invalid signature", nil),
			http.StatusUnauthorized,
			`{"ok":false,"error":"Invalid signature"}`,
		},
		{
			"validation failure",
			types.NewAppError(types.ErrCodeValidationInvalidJSON, "body is not valid JSON", nil),
			http.StatusBadRequest,
			`{"ok":false,"error":"body is not valid JSON"}`,
		},
		{
			"upstream failure",
			types.NewAppError(types.ErrCodeUpstreamMessaging, "messaging API request failed", errors.New("dial tcp: refused")),
			http.StatusBadGateway,
			`{"ok":false,"error":"messaging API request failed"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/webhooks/orders", nil)

			Error(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestError_WrappedAppErrorStillRecognized(t *testing.T) {
	inner := types.NewAppError(types.ErrCodeAuthSignatureInvalid, "Invalid signature", nil)
	wrapped := fmt.Errorf("handling webhook: %w", inner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders", nil)
	Error(rec, req, wrapped)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Invalid signature"}`, rec.Body.String())
}

func TestError_UnknownErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(rec, req, errors.New("pq: connection terminated unexpectedly"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "an unexpected error occurred", resp.Error)
	assert.NotContains(t, rec.Body.String(), "pq:")
}
