package stock

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"instock-widget/internal/model"
)

// Sort orders decorated rows for display. The row matching pinnedLocationID
// (at most one, the first) is extracted up front and prepended to the result
// regardless of mode. Unrecognized modes degrade to "none", which keeps the
// canonical order the rows arrived in. The input slice is never mutated.
//
// Every mode's comparator is total: after the mode's own key, ties fall
// through displayName and finally locationId, so identical inputs always
// yield identical output.
func Sort(rows []model.StockRow, mode model.SortMode, pinnedLocationID string, th model.Thresholds) []model.StockRow {
	pool := make([]model.StockRow, 0, len(rows))
	var pinned *model.StockRow
	for i := range rows {
		if pinned == nil && pinnedLocationID != "" && rows[i].LocationID == pinnedLocationID {
			p := rows[i]
			pinned = &p
			continue
		}
		pool = append(pool, rows[i])
	}

	mode = model.ParseSortMode(string(mode))
	if mode != model.SortNone {
		// Collators keep internal buffers and are not safe for concurrent
		// use, so each call builds its own.
		byName := nameComparator(collate.New(language.Und))

		switch mode {
		case model.SortNameAscending:
			slices.SortFunc(pool, byName)
		case model.SortQuantityDescending:
			slices.SortFunc(pool, func(a, b model.StockRow) int {
				if a.Quantity != b.Quantity {
					return cmp.Compare(b.Quantity, a.Quantity)
				}
				return byName(a, b)
			})
		case model.SortQuantityAscending:
			slices.SortFunc(pool, func(a, b model.StockRow) int {
				if a.Quantity != b.Quantity {
					return cmp.Compare(a.Quantity, b.Quantity)
				}
				return byName(a, b)
			})
		case model.SortInStockFirst:
			slices.SortFunc(pool, func(a, b model.StockRow) int {
				sa, sb := StatusOf(a.Quantity, th), StatusOf(b.Quantity, th)
				if sa != sb {
					return cmp.Compare(sa, sb)
				}
				return byName(a, b)
			})
		case model.SortStorePickupFirst:
			slices.SortFunc(pool, capabilityComparator(byName, func(r model.StockRow) bool { return r.StorePickupEnabled }))
		case model.SortShippingFirst:
			slices.SortFunc(pool, capabilityComparator(byName, func(r model.StockRow) bool { return r.HasShipping }))
		case model.SortLocalDeliveryFirst:
			slices.SortFunc(pool, capabilityComparator(byName, func(r model.StockRow) bool { return r.HasLocalDelivery }))
		}
	}

	if pinned != nil {
		return append([]model.StockRow{*pinned}, pool...)
	}
	return pool
}

// nameComparator is the locale-aware ascending displayName compare every
// mode uses as its tie-break chain. Collation ties (case or width variants)
// fall back to byte order, then locationId.
func nameComparator(coll *collate.Collator) func(a, b model.StockRow) int {
	return func(a, b model.StockRow) int {
		if c := coll.CompareString(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		if c := strings.Compare(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		return strings.Compare(a.LocationID, b.LocationID)
	}
}

// capabilityComparator orders rows with the capability first (boolean
// descending), then by name chain.
func capabilityComparator(byName func(a, b model.StockRow) int, has func(model.StockRow) bool) func(a, b model.StockRow) int {
	return func(a, b model.StockRow) int {
		ha, hb := has(a), has(b)
		if ha != hb {
			if ha {
				return -1
			}
			return 1
		}
		return byName(a, b)
	}
}
