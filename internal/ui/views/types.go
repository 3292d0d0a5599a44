// Package views contains the top-level screens the operator navigates
// between.
package views

// ViewType identifies a navigable screen.
type ViewType int

const (
	// ViewDashboard is the landing summary screen.
	ViewDashboard ViewType = iota
	// ViewOrders is the order search screen alerts deep-link into.
	ViewOrders
)

// String returns the display name of the view.
func (v ViewType) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewOrders:
		return "Orders"
	default:
		return "Unknown"
	}
}
