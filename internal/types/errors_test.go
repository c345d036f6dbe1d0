package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeValidationMissingField, http.StatusBadRequest},
		{ErrCodeAuthSignatureMissing, http.StatusUnauthorized},
		{ErrCodeAuthSignatureInvalid, http.StatusUnauthorized},
		{ErrCodeUpstreamMessaging, http.StatusBadGateway},
		{ErrCodeUpstreamRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternalUnexpected, http.StatusInternalServerError},
		{ErrorCode("something_unknown"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.HTTPStatus())
		})
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := NewAppError(ErrCodeUpstreamMessaging, "messaging API request failed", cause)

	assert.Equal(t, "upstream_messaging_unavailable: messaging API request failed", appErr.Error())
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.True(t, errors.Is(appErr, cause))
}

func TestAppError_ErrorsAsThroughWrapping(t *testing.T) {
	inner := NewAppError(ErrCodeAuthSignatureInvalid, "Invalid signature", nil)
	wrapped := errors.Join(errors.New("request rejected"), inner)

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrCodeAuthSignatureInvalid, appErr.Code)
}
