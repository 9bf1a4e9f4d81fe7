package shopify

import (
	"strings"

	"instock-widget/internal/model"
)

// The core keys every map by the plain numeric location id, because that is
// what the persisted location records store. These helpers reduce Admin API
// global ids at the boundary so the core never sees a gid.

// variantGID converts a storefront numeric variant id to the Admin API
// global id form.
func variantGID(variantID string) string {
	return "gid://shopify/ProductVariant/" + variantID
}

// isNumericID reports whether s is a plain decimal id.
func isNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// numericID reduces a global id like "gid://shopify/Location/42" to "42".
// Values without a slash pass through unchanged.
func numericID(gid string) string {
	if i := strings.LastIndexByte(gid, '/'); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

// snapshotsFromLevels flattens inventory level nodes into snapshots.
func snapshotsFromLevels(levels []inventoryLevelNode) []model.InventorySnapshot {
	snapshots := make([]model.InventorySnapshot, 0, len(levels))
	for _, level := range levels {
		snapshots = append(snapshots, model.InventorySnapshot{
			LocationID:           numericID(level.Location.ID),
			LocationName:         level.Location.Name,
			Quantity:             availableQuantity(level.Quantities),
			FulfillsOnlineOrders: level.Location.FulfillsOnlineOrders,
			PickupEnabled:        level.Location.LocalPickupSettings != nil,
			Address:              level.Location.Address,
		})
	}
	return snapshots
}

// availableQuantity picks the "available" entry. The query asks only for
// that name, but the API contract is a list.
func availableQuantity(quantities []quantityNode) int {
	for _, q := range quantities {
		if q.Name == "available" {
			return q.Quantity
		}
	}
	return 0
}

// rawSettings returns the metafield value bytes, nil when the slot is unset.
func rawSettings(shop shopNode) []byte {
	if shop.Metafield == nil || shop.Metafield.Value == "" {
		return nil
	}
	return []byte(shop.Metafield.Value)
}

// normalizeProfileLocationIDs reduces member location gids in place, in
// whichever connection shape they arrived.
func normalizeProfileLocationIDs(profiles []model.DeliveryProfile) {
	for pi := range profiles {
		for gi := range profiles[pi].ProfileLocationGroups {
			locations := &profiles[pi].ProfileLocationGroups[gi].LocationGroup.Locations
			for li := range locations.Nodes {
				locations.Nodes[li].ID = numericID(locations.Nodes[li].ID)
			}
			for ei := range locations.Edges {
				locations.Edges[ei].Node.ID = numericID(locations.Edges[ei].Node.ID)
			}
		}
	}
}
