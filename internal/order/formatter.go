package order

import (
	"fmt"
	"strings"
)

// ownerHeader is the line prepended to the customer message to produce the
// owner's copy.
const ownerHeader = "New order received!"

// noItemsLine is rendered in place of the items block when the order carries
// no line items. This is a formatting invariant, not an error condition.
const noItemsLine = "No items"

// FormatCustomerMessage renders the payload as the customer-facing text.
//
// It is a pure, total function: it never fails for any payload shape and
// renders missing data as documented placeholders. Formatting the same
// payload twice yields byte-identical output.
func FormatCustomerMessage(p Payload) string {
	phone := p.Phone()
	if phone == "" {
		phone = FallbackPhone
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", p.CustomerName())
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Type: %s\n", p.DeliveryType())
	fmt.Fprintf(&b, "Address: %s\n", p.Address())

	b.WriteString("Items:\n")
	items := p.Items()
	if len(items) == 0 {
		b.WriteString(noItemsLine + "\n")
	} else {
		for _, it := range items {
			fmt.Fprintf(&b, "• %d x %s\n", it.Qty, it.Name)
		}
	}

	fmt.Fprintf(&b, "Notes: %s", p.Notes())
	return b.String()
}

// FormatOwnerMessage wraps an already-formatted customer message with the
// new-order header. It only prepends; the body is never reformatted.
func FormatOwnerMessage(customerMessage string) string {
	return ownerHeader + "\n\n" + customerMessage
}

// Formatter is the default MessageFormatter used by the dispatch coordinator.
// It exists as a type so tests can substitute their own formatting.
type Formatter struct{}

// CustomerMessage implements the coordinator's formatter contract.
func (Formatter) CustomerMessage(p Payload) string {
	return FormatCustomerMessage(p)
}

// OwnerMessage implements the coordinator's formatter contract.
func (Formatter) OwnerMessage(customerMessage string) string {
	return FormatOwnerMessage(customerMessage)
}
