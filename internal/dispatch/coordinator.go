package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"orderline/internal/order"
)

// minPhoneLength is the plausibility threshold for a resolved customer phone
// number. Values at or below this length are treated as unusable and the
// customer leg is skipped rather than failed.
const minPhoneLength = 5

// Transport is the outbound messaging API consumed by the coordinator: a
// single send-text-message operation taking a recipient address and a message
// body. The success payload is returned raw so it can be surfaced verbatim
// in the dispatch result.
type Transport interface {
	SendText(ctx context.Context, to, body string) (json.RawMessage, error)
}

// MessageFormatter produces the two message variants for one payload.
// order.Formatter is the production implementation.
type MessageFormatter interface {
	CustomerMessage(p order.Payload) string
	OwnerMessage(customerMessage string) string
}

// Coordinator fans a formatted order message out to the owner and customer
// legs. The two attempts are issued concurrently and are fully independent:
// a failure or delay on one never prevents, blocks, or corrupts the other.
//
// The coordinator itself never retries; each transport call is a single
// attempt so that an operator-level retry policy can wrap the Transport
// without touching dispatch logic.
type Coordinator struct {
	transport Transport
	formatter MessageFormatter
	owner     string // configured owner recipient, may be empty
	logger    *slog.Logger
}

// NewCoordinator creates a Coordinator. ownerRecipient may be empty, in which
// case the owner leg is recorded as skipped on every dispatch.
func NewCoordinator(transport Transport, formatter MessageFormatter, ownerRecipient string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		transport: transport,
		formatter: formatter,
		owner:     ownerRecipient,
		logger:    logger,
	}
}

// Dispatch formats the payload and attempts delivery to both recipient legs,
// returning an outcome for each. It never returns an error: per-leg failures
// are data in the Result, not request-level faults.
func (c *Coordinator) Dispatch(ctx context.Context, p order.Payload) Result {
	customerMsg := c.formatter.CustomerMessage(p)
	ownerMsg := c.formatter.OwnerMessage(customerMsg)
	phone := p.Phone()

	var res Result

	// The legs have no ordering dependency on each other's outcome; run both
	// concurrently so a slow transport call on one cannot starve the other.
	// Each goroutine writes only its own result slot.
	var g errgroup.Group
	g.Go(func() error {
		res.Owner = c.ownerLeg(ctx, ownerMsg)
		return nil
	})
	g.Go(func() error {
		res.Customer = c.customerLeg(ctx, phone, customerMsg)
		return nil
	})
	_ = g.Wait()

	return res
}

// ownerLeg delivers the owner's copy, or records a skip when no owner
// recipient is configured.
func (c *Coordinator) ownerLeg(ctx context.Context, message string) Outcome {
	if c.owner == "" {
		c.logger.InfoContext(ctx, "owner leg skipped: no owner recipient configured")
		return Skipped(SkipNoOwner)
	}
	return c.attempt(ctx, "owner", c.owner, message)
}

// customerLeg delivers the customer's copy, or records a skip when the
// resolved phone number is missing or implausibly short.
func (c *Coordinator) customerLeg(ctx context.Context, phone, message string) Outcome {
	if len(phone) <= minPhoneLength {
		c.logger.InfoContext(ctx, "customer leg skipped: no usable phone number",
			"phone_length", len(phone),
		)
		return Skipped(SkipNoPhone)
	}
	return c.attempt(ctx, "customer", phone, message)
}

// attempt performs one transport call and converts its result into an
// Outcome. Transport errors and panics are captured here so they can never
// escape a leg and abort the sibling attempt.
func (c *Coordinator) attempt(ctx context.Context, leg, to, message string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "transport panicked during delivery",
				"leg", leg,
				"panic", fmt.Sprintf("%v", r),
			)
			out = Failed(fmt.Sprintf("transport panic: %v", r))
		}
	}()

	resp, err := c.transport.SendText(ctx, to, message)
	if err != nil {
		c.logger.WarnContext(ctx, "delivery failed",
			"leg", leg,
			"error", err.Error(),
		)
		return Failed(err.Error())
	}

	c.logger.InfoContext(ctx, "delivery succeeded", "leg", leg)
	return Delivered(resp)
}
