package model

// InventorySnapshot is one location's inventory fact for the requested
// variant, fetched fresh on every request. Read-only input to the pipeline.
type InventorySnapshot struct {
	LocationID           string   `json:"locationId"`
	LocationName         string   `json:"locationName"`
	Quantity             int      `json:"quantity"`
	FulfillsOnlineOrders bool     `json:"fulfillsOnlineOrders"`
	PickupEnabled        bool     `json:"pickupEnabled"`
	Address              *Address `json:"address,omitempty"`
}

// Address is the subset of a platform location address the widget needs for
// map links.
type Address struct {
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	City         string `json:"city,omitempty"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	Zip          string `json:"zip,omitempty"`
	CountryCode  string `json:"countryCode,omitempty"`
}

// CapabilityFlags are the derived fulfillment capabilities of one location.
// Aggregation only ever raises a flag, never lowers one.
type CapabilityFlags struct {
	HasShipping      bool `json:"hasShipping"`
	HasLocalDelivery bool `json:"hasLocalDelivery"`
}

// StockRow is one location's inventory fact merged with its override record
// and capability flags, ready for sorting and display. Built fresh per
// request, never persisted.
type StockRow struct {
	LocationID         string `json:"locationId"`
	DisplayName        string `json:"displayName"`
	Quantity           int    `json:"quantity"`
	SortOrder          int    `json:"sortOrder"`
	FromConfig         bool   `json:"fromConfig"`
	RegionKey          string `json:"regionKey"`
	ExcludeFromNearby  bool   `json:"excludeFromNearby"`
	HasShipping        bool   `json:"hasShipping"`
	HasLocalDelivery   bool   `json:"hasLocalDelivery"`
	StorePickupEnabled bool   `json:"storePickupEnabled"`
}

// AvailabilityPayload is the widget endpoint's response body: the resolved
// config plus the sorted row list, consumed as-is by the embed script.
type AvailabilityPayload struct {
	Config    *WidgetConfig `json:"config"`
	Locations []StockRow    `json:"locations"`
}
