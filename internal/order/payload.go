// Package order models the untrusted order payload posted by the upstream
// voice-agent platform and renders it into the human-readable messages sent
// to the customer and the restaurant owner.
//
// The upstream gives no shape guarantee whatsoever: fields may be absent,
// null, renamed, or carry the wrong JSON type. The payload is therefore kept
// as the decoded JSON object, and every accessor specifies an explicit
// fallback so that downstream formatting is total.
package order

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Placeholder values rendered when the corresponding payload field is absent
// or unusable. These are part of the message contract, not error states.
const (
	FallbackCustomerName = "Customer"
	FallbackPhone        = "Unknown"
	FallbackDeliveryType = "Pickup"
	FallbackItemName     = "item"
)

// customerPhoneKeys is the fixed priority of alternate key names under which
// the upstream may deliver the customer's phone number.
var customerPhoneKeys = []string{"phone", "customer_phone", "customerPhone"}

// itemListKeys is the fixed priority of keys under which the upstream may
// deliver the ordered line items.
var itemListKeys = []string{"order", "items"}

// Payload is the untrusted order record. It is constructed once at
// request-entry from the raw body, never mutated, and discarded when the
// request completes.
type Payload map[string]any

// ParsePayload decodes raw JSON into a Payload. It never fails: a malformed
// body or a non-object top-level value yields an empty Payload, for which
// every accessor returns its fallback.
func ParsePayload(raw []byte) Payload {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil || p == nil {
		return Payload{}
	}
	return p
}

// LineItem is one normalized entry of the order's item list.
type LineItem struct {
	Qty  int
	Name string
}

// CustomerName resolves the customer's display name: an explicit
// "customer_name" field, then a generic "name" field, then the placeholder.
func (p Payload) CustomerName() string {
	if v, ok := p.stringField("customer_name", "name"); ok {
		return v
	}
	return FallbackCustomerName
}

// Phone resolves the customer's phone number using the fixed key priority
// and strips internal whitespace. Returns the empty string when no usable
// value exists; display fallbacks are the formatter's concern.
func (p Payload) Phone() string {
	if v, ok := p.stringField(customerPhoneKeys...); ok {
		return strings.Join(strings.Fields(v), "")
	}
	return ""
}

// DeliveryType resolves the order's delivery type, defaulting to pickup.
func (p Payload) DeliveryType() string {
	if v, ok := p.stringField("delivery_type"); ok {
		return v
	}
	return FallbackDeliveryType
}

// Address resolves the delivery address, defaulting to the empty string.
func (p Payload) Address() string {
	v, _ := p.stringField("address")
	return v
}

// Notes resolves the free-text order notes, defaulting to the empty string.
func (p Payload) Notes() string {
	v, _ := p.stringField("notes")
	return v
}

// Items resolves the ordered line items. A missing list, a value that is not
// a JSON array, or entries that are not objects all coerce to their fallback
// instead of propagating a fault: the result is always a well-formed slice.
func (p Payload) Items() []LineItem {
	var list []any
	for _, key := range itemListKeys {
		if v, ok := p[key].([]any); ok {
			list = v
			break
		}
	}
	if len(list) == 0 {
		return nil
	}

	items := make([]LineItem, 0, len(list))
	for _, entry := range list {
		obj, _ := entry.(map[string]any)
		items = append(items, LineItem{
			Qty:  coerceQty(obj["qty"]),
			Name: coerceItemName(obj),
		})
	}
	return items
}

// stringField returns the first non-empty string value found under the given
// keys, in order. Non-string scalars (numbers, booleans) are coerced to their
// text form; null, objects, and arrays are treated as absent.
func (p Payload) stringField(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok {
			continue
		}
		if s := coerceString(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// coerceString renders a scalar JSON value as text. Composite and null
// values yield the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceQty normalizes a quantity value. Absent, non-numeric, or non-positive
// values coerce to 1.
func coerceQty(v any) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

// coerceItemName resolves a line item's name: an "item" field, then a "name"
// field, then the placeholder.
func coerceItemName(obj map[string]any) string {
	if obj != nil {
		for _, key := range []string{"item", "name"} {
			if s := coerceString(obj[key]); s != "" {
				return s
			}
		}
	}
	return FallbackItemName
}
