package models

// DefaultLowStockThreshold applies when a row has no reorder level of
// its own: fewer than this many units on hand counts as low.
const DefaultLowStockThreshold = 3

type StockBadge string

const (
	StockBadgeIn          StockBadge = "In Stock"
	StockBadgeLow         StockBadge = "Low Stock"
	StockBadgeOut         StockBadge = "Out of Stock"
	StockBadgeMadeToOrder StockBadge = "Made to Order"
)

// ComputeStockBadge classifies a quantity against a reorder level.
// Out wins over Low: a zero or negative quantity is always Out even
// when it also sits under the reorder level.
func ComputeStockBadge(qtyOnHand int, reorderLevel int) StockBadge {
	if qtyOnHand <= 0 {
		return StockBadgeOut
	}
	if reorderLevel > 0 {
		if qtyOnHand <= reorderLevel {
			return StockBadgeLow
		}
		return StockBadgeIn
	}
	if qtyOnHand < DefaultLowStockThreshold {
		return StockBadgeLow
	}
	return StockBadgeIn
}

// BadgeClass maps a badge to the css class the web client renders it with.
func BadgeClass(badge StockBadge) string {
	switch badge {
	case StockBadgeIn:
		return "badge-success"
	case StockBadgeLow:
		return "badge-warning"
	case StockBadgeOut:
		return "badge-danger"
	case StockBadgeMadeToOrder:
		return "badge-info"
	}
	return "badge-secondary"
}
