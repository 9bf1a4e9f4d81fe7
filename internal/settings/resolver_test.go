package settings

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"instock-widget/internal/model"
)

func TestResolveEmptyInputsYieldDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw)
			if diff := cmp.Diff(Defaults(), got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveTypeMismatchFallsBackPerLeaf(t *testing.T) {
	raw := map[string]any{
		"thresholds": map[string]any{
			"outOfStockMax": "x", // wrong type, must fall back alone
			"inStockMin":    float64(9),
		},
		"labels": map[string]any{
			"inStock": "Ready today",
		},
	}

	got := Resolve(raw)

	if got.Thresholds.OutOfStockMax != 0 {
		t.Errorf("OutOfStockMax = %d, want default 0", got.Thresholds.OutOfStockMax)
	}
	if got.Thresholds.InStockMin != 9 {
		t.Errorf("InStockMin = %d, want 9", got.Thresholds.InStockMin)
	}
	// Sibling sections keep their own supplied values.
	if got.Labels.InStock != "Ready today" {
		t.Errorf("Labels.InStock = %q, want %q", got.Labels.InStock, "Ready today")
	}
	if got.Labels.LowStock != "Low stock" {
		t.Errorf("Labels.LowStock = %q, want default %q", got.Labels.LowStock, "Low stock")
	}
}

func TestResolveMistypedSectionKeepsNeighbors(t *testing.T) {
	raw := map[string]any{
		"symbols": "not an object",
		"messages": map[string]any{
			"empty": "Sold out everywhere",
		},
	}

	got := Resolve(raw)

	if got.Symbols != Defaults().Symbols {
		t.Errorf("Symbols = %+v, want defaults", got.Symbols)
	}
	if got.Messages.Empty != "Sold out everywhere" {
		t.Errorf("Messages.Empty = %q, want supplied value", got.Messages.Empty)
	}
}

func TestResolveNotice(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want *model.Notice
	}{
		{"absent", map[string]any{}, nil},
		{"null", map[string]any{"notice": nil}, nil},
		{"blank text", map[string]any{"notice": map[string]any{"text": "   "}}, nil},
		{"empty object", map[string]any{"notice": map[string]any{}}, nil},
		{"object with text", map[string]any{"notice": map[string]any{"text": "Holiday hours apply"}}, &model.Notice{Text: "Holiday hours apply"}},
		{"legacy bare string", map[string]any{"notice": "Curbside only"}, &model.Notice{Text: "Curbside only"}},
		{"text trimmed", map[string]any{"notice": map[string]any{"text": "  trimmed  "}}, &model.Notice{Text: "trimmed"}},
		{"wrong type", map[string]any{"notice": float64(5)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw)
			if diff := cmp.Diff(tt.want, got.Notice); diff != "" {
				t.Errorf("Notice mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveRegionGroups(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want []model.RegionGroup
	}{
		{
			name: "absent yields empty list",
			raw:  map[string]any{},
			want: []model.RegionGroup{},
		},
		{
			name: "entries without id or name are dropped",
			raw: map[string]any{
				"regionGroups": []any{
					map[string]any{"id": "east", "name": "East Coast"},
					map[string]any{"id": "", "name": "No ID"},
					map[string]any{"id": "orphan"},
					"not an object",
				},
			},
			want: []model.RegionGroup{{ID: "east", Name: "East Coast", SortOrder: 1}},
		},
		{
			name: "missing sortOrder defaults to 1-based position among kept entries",
			raw: map[string]any{
				"regionGroups": []any{
					map[string]any{"id": "skipped", "name": ""},
					map[string]any{"id": "a", "name": "Alpha"},
					map[string]any{"id": "b", "name": "Beta", "sortOrder": float64(10)},
					map[string]any{"id": "c", "name": "Gamma"},
				},
			},
			want: []model.RegionGroup{
				{ID: "a", Name: "Alpha", SortOrder: 1},
				{ID: "c", Name: "Gamma", SortOrder: 3},
				{ID: "b", Name: "Beta", SortOrder: 10},
			},
		},
		{
			name: "sorted ascending with ties broken by id",
			raw: map[string]any{
				"regionGroups": []any{
					map[string]any{"id": "zeta", "name": "Z", "sortOrder": float64(2)},
					map[string]any{"id": "alpha", "name": "A", "sortOrder": float64(2)},
					map[string]any{"id": "mid", "name": "M", "sortOrder": float64(1)},
				},
			},
			want: []model.RegionGroup{
				{ID: "mid", Name: "M", SortOrder: 1},
				{ID: "alpha", Name: "A", SortOrder: 2},
				{ID: "zeta", Name: "Z", SortOrder: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw)
			if diff := cmp.Diff(tt.want, got.RegionGroups); diff != "" {
				t.Errorf("RegionGroups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolvePinnedLocationID(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"absent", map[string]any{}, ""},
		{"trimmed", map[string]any{"pinnedLocationId": "  gid://shopify/Location/7  "}, "gid://shopify/Location/7"},
		{"whitespace only becomes empty", map[string]any{"pinnedLocationId": "   "}, ""},
		{"wrong type", map[string]any{"pinnedLocationId": float64(7)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw)
			if got.PinnedLocationID != tt.want {
				t.Errorf("PinnedLocationID = %q, want %q", got.PinnedLocationID, tt.want)
			}
		})
	}
}

func TestResolveLocations(t *testing.T) {
	raw := map[string]any{
		"locations": []any{
			map[string]any{
				"locationId": "gid://shopify/Location/1",
				"enabled":    false,
				"publicName": "Flagship",
				"sortOrder":  float64(2),
			},
			map[string]any{
				"locationId":        "gid://shopify/Location/2",
				"regionGroupId":     "east",
				"excludeFromNearby": true,
			},
			"garbage entry",
		},
	}

	want := []model.LocationRecord{
		{
			LocationID: "gid://shopify/Location/1",
			Enabled:    false,
			PublicName: "Flagship",
			SortOrder:  2,
		},
		{
			LocationID:        "gid://shopify/Location/2",
			Enabled:           true, // absent enabled defaults to visible
			SortOrder:         model.UnrankedSortOrder,
			RegionGroupID:     "east",
			ExcludeFromNearby: true,
		},
	}

	got := Resolve(raw)
	if diff := cmp.Diff(want, got.Locations); diff != "" {
		t.Errorf("Locations mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveLocationsAbsentMeansNoOverrides(t *testing.T) {
	got := Resolve(map[string]any{"locationsMode": map[string]any{"mode": "onlineOnly"}})
	if got.Locations != nil {
		t.Errorf("Locations = %v, want nil when blob has no records", got.Locations)
	}
}

func TestResolveIdempotent(t *testing.T) {
	raw := map[string]any{
		"thresholds": map[string]any{"outOfStockMax": float64(1), "inStockMin": float64(4)},
		"notice":     map[string]any{"text": "Ships from store"},
		"sort":       map[string]any{"mode": "quantityDescending"},
		"regionGroups": []any{
			map[string]any{"id": "west", "name": "West"},
			map[string]any{"id": "east", "name": "East", "sortOrder": float64(1)},
		},
		"locations": []any{
			map[string]any{"locationId": "gid://shopify/Location/5", "publicName": "Harbor"},
		},
		"pinnedLocationId": " gid://shopify/Location/5 ",
		"someFutureKey":    "kept by the write path, ignored here",
	}

	first := Resolve(raw)

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	reparsed, err := ParseRaw(serialized)
	if err != nil {
		t.Fatalf("ParseRaw() error = %v", err)
	}
	second := Resolve(reparsed)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("resolve(serialize(resolve(x))) != resolve(x) (-first +second):\n%s", diff)
	}
}

func TestResolveDoesNotMutateRaw(t *testing.T) {
	raw := map[string]any{
		"thresholds":       map[string]any{"outOfStockMax": "bogus"},
		"unknownKey":       map[string]any{"nested": true},
		"regionGroups":     []any{map[string]any{"id": "a", "name": "A"}},
		"pinnedLocationId": "  keep-my-spaces  ",
	}
	var before map[string]any
	b, _ := json.Marshal(raw)
	json.Unmarshal(b, &before)

	Resolve(raw)

	var after map[string]any
	b, _ = json.Marshal(raw)
	json.Unmarshal(b, &after)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("Resolve() mutated its input (-before +after):\n%s", diff)
	}
}

func TestDefaultsReturnsFreshValue(t *testing.T) {
	a := Defaults()
	a.Labels.InStock = "mutated"
	a.RegionGroups = append(a.RegionGroups, model.RegionGroup{ID: "x", Name: "X", SortOrder: 1})

	b := Defaults()
	if b.Labels.InStock != "In stock" {
		t.Error("Defaults() shares state between calls")
	}
	if len(b.RegionGroups) != 0 {
		t.Error("Defaults() region groups leaked between calls")
	}
}

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantNil bool
		wantErr bool
	}{
		{"empty blob", "", true, false},
		{"whitespace blob", "  \n ", true, false},
		{"valid object", `{"sort": {"mode": "none"}}`, false, false},
		{"malformed json", `{"sort":`, true, true},
		{"non-object top level", `[1, 2]`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRaw([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRaw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("ParseRaw() = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}
