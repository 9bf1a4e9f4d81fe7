// Package stock joins inventory snapshots with override records and
// capability flags into display rows, and orders them deterministically.
package stock

import "instock-widget/internal/model"

// Status is the display band of a quantity.
type Status int

const (
	StatusInStock Status = iota
	StatusLowStock
	StatusOutOfStock
)

// StatusOf bands a quantity against the resolved thresholds. The
// out-of-stock check runs first, so an inverted configuration
// (outOfStockMax >= inStockMin) resolves overlapping quantities to out of
// stock rather than failing; the resolver accepts such configs as-is.
func StatusOf(quantity int, th model.Thresholds) Status {
	if quantity <= th.OutOfStockMax {
		return StatusOutOfStock
	}
	if quantity < th.InStockMin {
		return StatusLowStock
	}
	return StatusInStock
}

// String returns the stable machine token for a status, used by the CSV
// export and logs. Merchant-facing labels live in the resolved config.
func (s Status) String() string {
	switch s {
	case StatusInStock:
		return "in_stock"
	case StatusLowStock:
		return "low_stock"
	case StatusOutOfStock:
		return "out_of_stock"
	default:
		return "unknown"
	}
}
