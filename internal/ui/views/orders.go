package views

import (
	"strings"

	"github.com/vigilops/vigil/internal/ui/styles"
)

// OrdersView is the order search screen. Alert navigation lands here with
// the alert's order reference pre-filled as the search term.
type OrdersView struct {
	width  int
	height int

	searchTerm string
}

// NewOrders creates the orders view.
func NewOrders() *OrdersView {
	return &OrdersView{}
}

// SetSize sets the view dimensions.
func (v *OrdersView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetSearchTerm pre-fills the search field, replacing any previous term.
func (v *OrdersView) SetSearchTerm(term string) {
	v.searchTerm = term
}

// SearchTerm returns the current search term.
func (v *OrdersView) SearchTerm() string {
	return v.searchTerm
}

// Clear resets the search field.
func (v *OrdersView) Clear() {
	v.searchTerm = ""
}

// View renders the orders screen.
func (v *OrdersView) View() string {
	title := styles.TitleStyle.Render("Orders")

	var search string
	if v.searchTerm == "" {
		search = styles.MutedStyle.Render("Search: (no filter)")
	} else {
		search = "Search: " + styles.SelectedStyle.Render(v.searchTerm)
	}

	lines := []string{
		title,
		"",
		search,
		"",
		styles.MutedStyle.Render("1 dashboard · a alerts · q quit"),
	}
	return strings.Join(lines, "\n")
}
