package cart

import "fmt"

type EventKind int

const (
	EventNone EventKind = iota
	EventItemAdded
	EventItemAddedAgain
	EventItemRemoved
	EventQuantityChanged
	EventCleared
)

// Event describes a cart mutation for user-facing feedback. Events come out
// of the ledger in mutation order, so messages never reorder relative to
// the changes they describe.
type Event struct {
	Kind        EventKind
	ProductName string
}

// Message renders the storefront notification for the event. A zero event
// (no-op mutation) has no message.
func (e Event) Message() string {
	switch e.Kind {
	case EventItemAdded:
		return fmt.Sprintf("Added %s to your cart", e.ProductName)
	case EventItemAddedAgain:
		return fmt.Sprintf("Added another %s to your cart", e.ProductName)
	case EventItemRemoved:
		return fmt.Sprintf("Removed %s from your cart", e.ProductName)
	case EventQuantityChanged:
		return fmt.Sprintf("Updated %s quantity", e.ProductName)
	case EventCleared:
		return "Cart cleared"
	default:
		return ""
	}
}
