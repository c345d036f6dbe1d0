// Package handlers contains the HTTP handler implementations for the
// orderline API.
//
// The order webhook handler is called directly by the upstream voice-agent
// platform; it is not behind any auth middleware. Security is provided by
// verifying the HMAC-SHA256 signature header against the raw request body.
package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orderline/internal/core"
	"orderline/internal/dispatch"
	"orderline/internal/order"
	"orderline/internal/types"
)

// Signature header names accepted on inbound events, checked in order.
var signatureHeaders = []string{"X-Retell-Signature", "X-Hub-Signature"}

// SignatureVerifier authenticates an inbound request body against its
// signature header. auth.HMACVerifier is the production implementation.
type SignatureVerifier interface {
	Verify(rawBody []byte, signature string) bool
}

// Dispatcher fans the order out to its recipient legs.
// dispatch.Coordinator is the production implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, p order.Payload) dispatch.Result
}

// OrderWebhookHandler handles inbound order notifications.
type OrderWebhookHandler struct {
	verifier     SignatureVerifier
	dispatcher   Dispatcher
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewOrderWebhookHandler creates an OrderWebhookHandler with the provided
// dependencies.
func NewOrderWebhookHandler(
	verifier SignatureVerifier,
	dispatcher Dispatcher,
	maxBodyBytes int64,
	logger *slog.Logger,
) *OrderWebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderWebhookHandler{
		verifier:     verifier,
		dispatcher:   dispatcher,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// RegisterRoutes mounts the order webhook endpoint.
func (h *OrderWebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/webhooks/orders", h.Handle)
}

// webhookResponse is the success envelope: {"ok":true,"results":{...}}.
type webhookResponse struct {
	OK      bool            `json:"ok"`
	Results dispatch.Result `json:"results"`
}

// Handle processes one inbound order notification:
//
//  1. Reads the raw body with a size limit.
//  2. Verifies the signature header over the exact raw bytes. A failed
//     verification rejects the request before any formatting or dispatch --
//     zero side effects.
//  3. Normalizes the payload (total, never fails).
//  4. Dispatches to the owner and customer legs.
//  5. Returns 200 with the per-recipient results. Partial delivery failure
//     is still a 200: per-leg failure is data, not a request-level error.
func (h *OrderWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to read webhook body",
			"error", err,
		)
		core.Error(w, r, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to read request body",
			err,
		))
		return
	}

	if !h.verifier.Verify(rawBody, signatureHeader(r)) {
		h.logger.WarnContext(r.Context(), "webhook signature verification failed")
		core.Error(w, r, types.NewAppError(
			types.ErrCodeAuthSignatureInvalid,
			"Invalid signature",
			nil,
		))
		return
	}

	payload := order.ParsePayload(rawBody)

	h.logger.InfoContext(r.Context(), "processing order notification",
		"customer", payload.CustomerName(),
		"items", len(payload.Items()),
	)

	results := h.dispatcher.Dispatch(r.Context(), payload)

	core.JSON(w, r, http.StatusOK, webhookResponse{OK: true, Results: results})
}

// signatureHeader returns the first populated signature header value.
func signatureHeader(r *http.Request) string {
	for _, name := range signatureHeaders {
		if v := r.Header.Get(name); v != "" {
			return v
		}
	}
	return ""
}
