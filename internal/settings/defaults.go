package settings

import (
	"instock-widget/internal/model"
)

// Defaults returns a fresh, fully populated configuration. Every call
// constructs a new value so concurrent resolutions never share state and a
// caller mutating its copy cannot contaminate later requests.
func Defaults() *model.WidgetConfig {
	return &model.WidgetConfig{
		Thresholds: model.Thresholds{
			OutOfStockMax: 0,
			InStockMin:    5,
		},
		QuantityDisplay: model.QuantityDisplay{
			Label:             "available",
			WrapperBefore:     "(",
			WrapperAfter:      ")",
			RowContentMode:    "statusAndQuantity",
			ShowQuantity:      true,
			ShowQuantityLabel: false,
		},
		Symbols: model.Symbols{
			InStock:    "🟢",
			LowStock:   "🟡",
			OutOfStock: "🔴",
		},
		Labels: model.StatusLabels{
			InStock:    "In stock",
			LowStock:   "Low stock",
			OutOfStock: "Out of stock",
		},
		LocationsMode: model.LocationsMode{
			Mode:          model.LocationsModeAll,
			UsePublicName: true,
		},
		Click: model.ClickBehavior{
			Action:         model.ClickActionNone,
			MapURLTemplate: "https://www.google.com/maps/search/?api=1&query={address}",
			URLTemplate:    "",
		},
		Sort: model.SortConfig{
			Mode: string(model.SortNone),
		},
		Messages: model.Messages{
			Loading: "Checking availability...",
			Empty:   "No locations to show",
			Error:   "Availability is temporarily unavailable",
		},
		Notice:           nil,
		PinnedLocationID: "",
		RegionGroups:     []model.RegionGroup{},
		Locations:        nil,
		Future: model.FutureFlags{
			ShowNearestBadge:      false,
			UseMetaobjectSettings: false,
		},
	}
}
