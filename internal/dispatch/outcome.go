// Package dispatch drives delivery of a formatted order message to the two
// recipient legs (the restaurant owner and the customer) through the outbound
// messaging transport, isolating failures per recipient and assembling the
// combined result.
package dispatch

import "encoding/json"

// OutcomeKind tags a per-recipient delivery outcome so callers can
// pattern-match results instead of inspecting error shapes.
type OutcomeKind string

const (
	// OutcomeDelivered means the transport accepted the message.
	OutcomeDelivered OutcomeKind = "delivered"
	// OutcomeSkipped means the leg was intentionally not attempted.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeFailed means the transport rejected or errored on the attempt.
	OutcomeFailed OutcomeKind = "failed"
)

// Skip reason markers. These literals appear verbatim in the response body,
// so callers can assert on them.
const (
	// SkipNoPhone is reported when no plausible customer phone number could
	// be resolved from the payload.
	SkipNoPhone = "skipped_no_phone"
	// SkipNoOwner is reported when no owner recipient is configured.
	SkipNoOwner = "skipped_no_owner"
)

// Outcome is the tagged per-recipient delivery result.
// Exactly one of Response, SkipReason, or Failure is populated, matching Kind.
type Outcome struct {
	Kind OutcomeKind
	// Response carries the transport's raw success payload.
	Response json.RawMessage
	// SkipReason carries one of the skip markers.
	SkipReason string
	// Failure carries the transport's error detail verbatim (status code and
	// body, or a generic error description) for diagnosability.
	Failure string
}

// Delivered constructs a successful outcome carrying the transport response.
func Delivered(response json.RawMessage) Outcome {
	return Outcome{Kind: OutcomeDelivered, Response: response}
}

// Skipped constructs an outcome for a leg that was intentionally not attempted.
func Skipped(reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, SkipReason: reason}
}

// Failed constructs an outcome for a transport-level failure.
func Failed(detail string) Outcome {
	return Outcome{Kind: OutcomeFailed, Failure: detail}
}

// Result aggregates the two independent recipient legs of one dispatch.
// The owner leg always precedes the customer leg in the serialized form.
type Result struct {
	Owner    Outcome
	Customer Outcome
}

// resultWire is the serialized shape of a Result. Delivered legs report the
// transport response under the role key, skipped legs report the skip marker
// string under the role key, and failed legs report the error detail under
// the <role>_error key.
type resultWire struct {
	Owner         any    `json:"owner,omitempty"`
	OwnerError    string `json:"owner_error,omitempty"`
	Customer      any    `json:"customer,omitempty"`
	CustomerError string `json:"customer_error,omitempty"`
}

// MarshalJSON implements the wire contract for dispatch results.
func (r Result) MarshalJSON() ([]byte, error) {
	var w resultWire
	w.Owner, w.OwnerError = legWire(r.Owner)
	w.Customer, w.CustomerError = legWire(r.Customer)
	return json.Marshal(w)
}

// legWire flattens one outcome into its (value, error) wire pair.
func legWire(o Outcome) (any, string) {
	switch o.Kind {
	case OutcomeDelivered:
		// A transport may hand back an empty or otherwise non-JSON success
		// body; embedding that raw would fail serialization of the whole
		// result, so it is carried as a JSON string instead.
		if !json.Valid(o.Response) {
			return string(o.Response), ""
		}
		return o.Response, ""
	case OutcomeSkipped:
		return o.SkipReason, ""
	case OutcomeFailed:
		return nil, o.Failure
	default:
		return nil, ""
	}
}
