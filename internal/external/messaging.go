package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"orderline/internal/config"
	"orderline/internal/types"
)

// maxResponseBodyRead limits how much of a provider response body is read for
// success payloads and error details.
const maxResponseBodyRead = 4096

// SendError is returned when the messaging API rejects a send. It carries the
// provider's raw error payload verbatim so failed delivery legs remain
// diagnosable from the dispatch result alone.
type SendError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface. The text is what surfaces in a
// failed delivery outcome, so it includes the status and body as-is.
func (e *SendError) Error() string {
	return fmt.Sprintf("messaging API returned %d: %s", e.StatusCode, e.Body)
}

// MessagingClient sends text messages through a WhatsApp Cloud API-style
// endpoint: POST {base}/{sender_id}/messages with a bearer token. All
// requests route through BaseClient for circuit breaking; the dispatch path
// configures zero retries so each delivery leg is exactly one attempt.
type MessagingClient struct {
	base     *BaseClient
	token    types.SecretString
	senderID string
	baseURL  string
	logger   *slog.Logger
}

// NewMessagingClient creates a MessagingClient from the messaging transport
// configuration. The HTTP client timeout comes from cfg.Timeout; there is no
// additional timeout inside the client itself.
func NewMessagingClient(cfg config.MessagingConfig, logger *slog.Logger) *MessagingClient {
	if logger == nil {
		logger = slog.Default()
	}

	base := NewBaseClient(
		&http.Client{Timeout: cfg.Timeout},
		"messaging",
		NoRetryPolicy(),
		"orderline/1.0",
	)

	return &MessagingClient{
		base:     base,
		token:    cfg.Token,
		senderID: cfg.SenderID,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:   logger,
	}
}

// NewMessagingClientWithBase creates a MessagingClient with a pre-configured
// BaseClient. Used by tests to control retry and breaker behavior.
func NewMessagingClientWithBase(base *BaseClient, cfg config.MessagingConfig, logger *slog.Logger) *MessagingClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessagingClient{
		base:     base,
		token:    cfg.Token,
		senderID: cfg.SenderID,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:   logger,
	}
}

// textMessagePayload is the Cloud API send-message request body.
type textMessagePayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	Body string `json:"body"`
}

// sendResponse is the subset of the provider's success payload needed for
// logging. The full raw payload is what gets returned to the caller.
type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText delivers one text message to the given recipient and returns the
// provider's raw success payload. A non-2xx response becomes a *SendError
// carrying the provider's status and body verbatim.
func (c *MessagingClient) SendText(ctx context.Context, to, body string) (json.RawMessage, error) {
	payload := textMessagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textContent{Body: body},
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to marshal send-message payload",
			err,
		)
	}

	reqURL := fmt.Sprintf("%s/%s/messages", c.baseURL, c.senderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create send-message request",
			err,
		)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.Unmask())

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyRead))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "messaging API rejected send",
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return nil, &SendError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	// A dropped connection mid-body must not pass off a truncated payload as
	// a delivered outcome.
	if readErr != nil {
		c.logger.WarnContext(ctx, "failed to read messaging API response body",
			"status", resp.StatusCode,
			"error", readErr,
		)
		return nil, types.NewAppError(
			types.ErrCodeUpstreamMessaging,
			"failed to read messaging API response body",
			readErr,
		)
	}

	c.logger.InfoContext(ctx, "message accepted by provider",
		"status", resp.StatusCode,
		"provider_message_id", providerMessageID(raw, resp.StatusCode),
	)

	// Some endpoints acknowledge with an empty or non-JSON body. The success
	// payload is embedded raw in the dispatch result, so it has to be valid
	// JSON; anything else is carried as a JSON string.
	if !json.Valid(raw) {
		raw, _ = json.Marshal(string(raw))
	}

	return json.RawMessage(raw), nil
}

// providerMessageID extracts the provider-assigned message ID from a success
// payload, falling back to a synthetic traceable reference when the provider
// returned none.
func providerMessageID(raw []byte, statusCode int) string {
	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if len(parsed.Messages) > 0 && parsed.Messages[0].ID != "" {
			return parsed.Messages[0].ID
		}
	}
	return fmt.Sprintf("generic-%d-%d-%s", statusCode, time.Now().Unix(), uuid.New().String()[:8])
}
