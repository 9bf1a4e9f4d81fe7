// Package model defines the widget's canonical data structures and error taxonomy.
package model

// Sentinel values shared by the resolver, decorator and sorter.
const (
	// UnrankedSortOrder marks a row or record with no explicit rank.
	// Rows carrying it sort after every explicitly ranked row.
	UnrankedSortOrder = 999999

	// RegionKeyPinned groups the pinned location in the presentation layer.
	RegionKeyPinned = "pinned"

	// RegionKeyUnset groups rows that resolved to no region.
	RegionKeyUnset = "unset"
)

// WidgetConfig is the fully resolved widget configuration. Every leaf is
// populated after resolution; the presentation layer never sees a missing or
// mistyped field. Serialized camelCase because the embed script consumes it
// directly.
type WidgetConfig struct {
	Thresholds       Thresholds       `json:"thresholds"`
	QuantityDisplay  QuantityDisplay  `json:"quantityDisplay"`
	Symbols          Symbols          `json:"symbols"`
	Labels           StatusLabels     `json:"labels"`
	LocationsMode    LocationsMode    `json:"locationsMode"`
	Click            ClickBehavior    `json:"click"`
	Sort             SortConfig       `json:"sort"`
	Messages         Messages         `json:"messages"`
	Notice           *Notice          `json:"notice"`
	PinnedLocationID string           `json:"pinnedLocationId,omitempty"`
	RegionGroups     []RegionGroup    `json:"regionGroups"`
	Locations        []LocationRecord `json:"locations,omitempty"`
	Future           FutureFlags      `json:"future"`
}

// Thresholds splits quantities into status bands. A quantity at or below
// OutOfStockMax is out of stock; below InStockMin is low stock; anything
// else is in stock.
type Thresholds struct {
	OutOfStockMax int `json:"outOfStockMax"`
	InStockMin    int `json:"inStockMin"`
}

// QuantityDisplay controls how the raw quantity is rendered inside a row.
type QuantityDisplay struct {
	Label             string `json:"label"`
	WrapperBefore     string `json:"wrapperBefore"`
	WrapperAfter      string `json:"wrapperAfter"`
	RowContentMode    string `json:"rowContentMode"`
	ShowQuantity      bool   `json:"showQuantity"`
	ShowQuantityLabel bool   `json:"showQuantityLabel"`
}

// Symbols are the per-status glyphs shown before each row.
type Symbols struct {
	InStock    string `json:"inStock"`
	LowStock   string `json:"lowStock"`
	OutOfStock string `json:"outOfStock"`
}

// StatusLabels are the per-status display texts.
type StatusLabels struct {
	InStock    string `json:"inStock"`
	LowStock   string `json:"lowStock"`
	OutOfStock string `json:"outOfStock"`
}

// LocationsMode values for Mode.
const (
	LocationsModeAll           = "all"
	LocationsModeOnlineOnly    = "onlineOnly"
	LocationsModeCustomFromApp = "customFromApp"
)

// LocationsMode selects which locations the widget shows and whether the
// merchant-facing public name replaces the platform location name.
type LocationsMode struct {
	Mode          string `json:"mode"`
	UsePublicName bool   `json:"usePublicName"`
}

// ClickBehavior values for Action.
const (
	ClickActionNone    = "none"
	ClickActionOpenMap = "openMap"
	ClickActionOpenURL = "openUrl"
)

// ClickBehavior is what happens when a shopper clicks a row.
type ClickBehavior struct {
	Action         string `json:"action"`
	MapURLTemplate string `json:"mapUrlTemplate"`
	URLTemplate    string `json:"urlTemplate"`
}

// SortConfig carries the configured sort mode. The value is kept verbatim
// from the persisted blob; unrecognized modes degrade to "none" at sort time.
type SortConfig struct {
	Mode string `json:"mode"`
}

// Messages are the loading/empty/error texts the widget shows outside the
// normal row list.
type Messages struct {
	Loading string `json:"loading"`
	Empty   string `json:"empty"`
	Error   string `json:"error"`
}

// Notice is an optional banner above the location list. A nil Notice means
// no banner; a present one always has non-blank text.
type Notice struct {
	Text string `json:"text"`
}

// RegionGroup is a merchant-defined grouping of locations. Groups are
// resolved to an ascending SortOrder list; ties break by ID.
type RegionGroup struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// LocationRecord is one per-location override inside the persisted config,
// keyed by LocationID. Absence of all records means "no overrides": every
// location from the platform stays visible with defaults.
type LocationRecord struct {
	LocationID        string `json:"locationId"`
	Enabled           bool   `json:"enabled"`
	PublicName        string `json:"publicName"`
	SortOrder         int    `json:"sortOrder"`
	RegionGroupID     string `json:"regionGroupId,omitempty"`
	ExcludeFromNearby bool   `json:"excludeFromNearby"`
}

// FutureFlags gate features that ship dark. Resolved like any other section
// so old blobs and new flags coexist.
type FutureFlags struct {
	ShowNearestBadge      bool `json:"showNearestBadge"`
	UseMetaobjectSettings bool `json:"useMetaobjectSettings"`
}

// SortMode enumerates the widget's row orderings.
type SortMode string

const (
	SortNone               SortMode = "none"
	SortNameAscending      SortMode = "nameAscending"
	SortQuantityDescending SortMode = "quantityDescending"
	SortQuantityAscending  SortMode = "quantityAscending"
	SortInStockFirst       SortMode = "inStockFirst"
	SortStorePickupFirst   SortMode = "storePickupFirst"
	SortShippingFirst      SortMode = "shippingFirst"
	SortLocalDeliveryFirst SortMode = "localDeliveryFirst"
)

// ParseSortMode maps a configured mode string onto the closed enumeration.
// Unrecognized values fall back to SortNone.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortNameAscending, SortQuantityDescending, SortQuantityAscending,
		SortInStockFirst, SortStorePickupFirst, SortShippingFirst,
		SortLocalDeliveryFirst:
		return SortMode(s)
	default:
		return SortNone
	}
}
