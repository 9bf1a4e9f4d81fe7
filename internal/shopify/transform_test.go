package shopify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"instock-widget/internal/model"
)

func TestVariantGID(t *testing.T) {
	if got := variantGID("41234567890123"); got != "gid://shopify/ProductVariant/41234567890123" {
		t.Errorf("variantGID() = %q", got)
	}
}

func TestIsNumericID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"41234567890123", true},
		{"1", true},
		{"", false},
		{"12a3", false},
		{"-123", false},
		{"12.3", false},
		{"gid://shopify/ProductVariant/123", false},
	}

	for _, tt := range tests {
		if got := isNumericID(tt.in); got != tt.want {
			t.Errorf("isNumericID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNumericID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gid://shopify/Location/68093313188", "68093313188"},
		{"gid://shopify/ProductVariant/42", "42"},
		{"68093313188", "68093313188"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := numericID(tt.in); got != tt.want {
			t.Errorf("numericID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotsFromLevels(t *testing.T) {
	levels := []inventoryLevelNode{
		{
			Quantities: []quantityNode{{Name: "available", Quantity: 7}},
			Location: locationNode{
				ID:                   "gid://shopify/Location/1001",
				Name:                 "Harbor Store",
				FulfillsOnlineOrders: true,
				LocalPickupSettings:  &pickupNode{Instructions: "ring the bell"},
				Address: &model.Address{
					Address1:    "1 Pier Rd",
					City:        "Portsmouth",
					CountryCode: "GB",
				},
			},
		},
		{
			// No pickup settings, no address, unexpected quantity name.
			Quantities: []quantityNode{{Name: "on_hand", Quantity: 12}},
			Location: locationNode{
				ID:   "gid://shopify/Location/1002",
				Name: "Warehouse",
			},
		},
	}

	want := []model.InventorySnapshot{
		{
			LocationID:           "1001",
			LocationName:         "Harbor Store",
			Quantity:             7,
			FulfillsOnlineOrders: true,
			PickupEnabled:        true,
			Address: &model.Address{
				Address1:    "1 Pier Rd",
				City:        "Portsmouth",
				CountryCode: "GB",
			},
		},
		{
			LocationID:   "1002",
			LocationName: "Warehouse",
			Quantity:     0,
		},
	}

	got := snapshotsFromLevels(levels)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshotsFromLevels() mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotsFromLevelsEmpty(t *testing.T) {
	if got := snapshotsFromLevels(nil); len(got) != 0 {
		t.Errorf("snapshotsFromLevels(nil) = %v, want empty", got)
	}
}

func TestRawSettings(t *testing.T) {
	var shop shopNode
	if got := rawSettings(shop); got != nil {
		t.Errorf("rawSettings(no metafield) = %q, want nil", got)
	}

	shop.Metafield = &struct {
		Value string `json:"value"`
	}{Value: ""}
	if got := rawSettings(shop); got != nil {
		t.Errorf("rawSettings(empty value) = %q, want nil", got)
	}

	shop.Metafield.Value = `{"sort":{"mode":"nameAscending"}}`
	if got := string(rawSettings(shop)); got != `{"sort":{"mode":"nameAscending"}}` {
		t.Errorf("rawSettings() = %q", got)
	}
}

func TestNormalizeProfileLocationIDs(t *testing.T) {
	profiles := []model.DeliveryProfile{
		{
			ID: "gid://shopify/DeliveryProfile/1",
			ProfileLocationGroups: []model.ProfileLocationGroup{
				{
					LocationGroup: model.LocationGroup{
						ID: "gid://shopify/DeliveryLocationGroup/9",
						Locations: model.Connection[model.GraphLocation]{
							Nodes: []model.GraphLocation{
								{ID: "gid://shopify/Location/1001"},
								{ID: "1002"},
							},
						},
					},
				},
				{
					LocationGroup: model.LocationGroup{
						Locations: model.Connection[model.GraphLocation]{
							Edges: []model.Edge[model.GraphLocation]{
								{Node: model.GraphLocation{ID: "gid://shopify/Location/1003"}},
							},
						},
					},
				},
			},
		},
	}

	normalizeProfileLocationIDs(profiles)

	first := profiles[0].ProfileLocationGroups[0].LocationGroup.Locations.Nodes
	if first[0].ID != "1001" || first[1].ID != "1002" {
		t.Errorf("nodes ids = %q, %q", first[0].ID, first[1].ID)
	}
	second := profiles[0].ProfileLocationGroups[1].LocationGroup.Locations.Edges
	if second[0].Node.ID != "1003" {
		t.Errorf("edge id = %q", second[0].Node.ID)
	}
}
