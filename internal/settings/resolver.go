// Package settings turns the untrusted persisted configuration blob into the
// canonical WidgetConfig and merges admin edits back into the blob.
//
// The persisted value is merchant data of arbitrary shape: fields may be
// missing, mistyped, or left over from older app versions. Resolution is
// total and leaf-by-leaf: each leaf takes the raw value when it exists with
// the expected primitive type and otherwise falls back to the default, so a
// single malformed key never discards its valid siblings.
package settings

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"instock-widget/internal/model"
)

// ParseRaw decodes the persisted blob into an untyped map. An empty or
// absent blob is not an error and yields a nil map; malformed JSON (or a
// non-object top level) is reported so the caller can log and resolve from
// nil instead.
func ParseRaw(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings blob: %w", err)
	}
	return raw, nil
}

// Resolve merges the raw blob against the default schema and returns the
// canonical configuration. Deterministic and total: any input, including
// nil, produces a fully populated config and never an error. The raw map is
// only read, never mutated, so the write path can keep round-tripping keys
// this resolver does not know about.
func Resolve(raw map[string]any) *model.WidgetConfig {
	cfg := Defaults()
	if len(raw) == 0 {
		return cfg
	}

	if sec := sectionAt(raw, "thresholds"); sec != nil {
		cfg.Thresholds.OutOfStockMax = intAt(sec, "outOfStockMax", cfg.Thresholds.OutOfStockMax)
		cfg.Thresholds.InStockMin = intAt(sec, "inStockMin", cfg.Thresholds.InStockMin)
	}

	if sec := sectionAt(raw, "quantityDisplay"); sec != nil {
		cfg.QuantityDisplay.Label = strAt(sec, "label", cfg.QuantityDisplay.Label)
		cfg.QuantityDisplay.WrapperBefore = strAt(sec, "wrapperBefore", cfg.QuantityDisplay.WrapperBefore)
		cfg.QuantityDisplay.WrapperAfter = strAt(sec, "wrapperAfter", cfg.QuantityDisplay.WrapperAfter)
		cfg.QuantityDisplay.RowContentMode = strAt(sec, "rowContentMode", cfg.QuantityDisplay.RowContentMode)
		cfg.QuantityDisplay.ShowQuantity = boolAt(sec, "showQuantity", cfg.QuantityDisplay.ShowQuantity)
		cfg.QuantityDisplay.ShowQuantityLabel = boolAt(sec, "showQuantityLabel", cfg.QuantityDisplay.ShowQuantityLabel)
	}

	if sec := sectionAt(raw, "symbols"); sec != nil {
		cfg.Symbols.InStock = strAt(sec, "inStock", cfg.Symbols.InStock)
		cfg.Symbols.LowStock = strAt(sec, "lowStock", cfg.Symbols.LowStock)
		cfg.Symbols.OutOfStock = strAt(sec, "outOfStock", cfg.Symbols.OutOfStock)
	}

	if sec := sectionAt(raw, "labels"); sec != nil {
		cfg.Labels.InStock = strAt(sec, "inStock", cfg.Labels.InStock)
		cfg.Labels.LowStock = strAt(sec, "lowStock", cfg.Labels.LowStock)
		cfg.Labels.OutOfStock = strAt(sec, "outOfStock", cfg.Labels.OutOfStock)
	}

	if sec := sectionAt(raw, "locationsMode"); sec != nil {
		cfg.LocationsMode.Mode = strAt(sec, "mode", cfg.LocationsMode.Mode)
		cfg.LocationsMode.UsePublicName = boolAt(sec, "usePublicName", cfg.LocationsMode.UsePublicName)
	}

	if sec := sectionAt(raw, "click"); sec != nil {
		cfg.Click.Action = strAt(sec, "action", cfg.Click.Action)
		cfg.Click.MapURLTemplate = strAt(sec, "mapUrlTemplate", cfg.Click.MapURLTemplate)
		cfg.Click.URLTemplate = strAt(sec, "urlTemplate", cfg.Click.URLTemplate)
	}

	if sec := sectionAt(raw, "sort"); sec != nil {
		cfg.Sort.Mode = strAt(sec, "mode", cfg.Sort.Mode)
	}

	if sec := sectionAt(raw, "messages"); sec != nil {
		cfg.Messages.Loading = strAt(sec, "loading", cfg.Messages.Loading)
		cfg.Messages.Empty = strAt(sec, "empty", cfg.Messages.Empty)
		cfg.Messages.Error = strAt(sec, "error", cfg.Messages.Error)
	}

	if sec := sectionAt(raw, "future"); sec != nil {
		cfg.Future.ShowNearestBadge = boolAt(sec, "showNearestBadge", cfg.Future.ShowNearestBadge)
		cfg.Future.UseMetaobjectSettings = boolAt(sec, "useMetaobjectSettings", cfg.Future.UseMetaobjectSettings)
	}

	cfg.Notice = resolveNotice(raw)
	cfg.PinnedLocationID = strings.TrimSpace(strAt(raw, "pinnedLocationId", ""))
	cfg.RegionGroups = resolveRegionGroups(raw)
	cfg.Locations = resolveLocations(raw)

	return cfg
}

// resolveNotice returns nil unless the raw notice carries non-blank text.
// Accepts both the canonical {text} object and a bare string left by early
// app versions.
func resolveNotice(raw map[string]any) *model.Notice {
	var text string
	switch v := raw["notice"].(type) {
	case string:
		text = v
	case map[string]any:
		text = strAt(v, "text", "")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &model.Notice{Text: text}
}

// resolveRegionGroups keeps entries with a non-empty id and name, defaults a
// missing sortOrder to the entry's 1-based position among the kept entries,
// and returns the list ascending by sortOrder with ties broken by id.
func resolveRegionGroups(raw map[string]any) []model.RegionGroup {
	items, ok := raw["regionGroups"].([]any)
	if !ok {
		return []model.RegionGroup{}
	}

	groups := make([]model.RegionGroup, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := strAt(m, "id", "")
		name := strAt(m, "name", "")
		if id == "" || name == "" {
			continue
		}
		groups = append(groups, model.RegionGroup{
			ID:        id,
			Name:      name,
			SortOrder: intAt(m, "sortOrder", len(groups)+1),
		})
	}

	slices.SortFunc(groups, func(a, b model.RegionGroup) int {
		if a.SortOrder != b.SortOrder {
			return cmp.Compare(a.SortOrder, b.SortOrder)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return groups
}

// resolveLocations resolves the override records structurally. An absent or
// mistyped list means "no overrides" (nil), which the decorator treats as
// every location visible with defaults. Records are never invented, so the
// list is not defaulted.
func resolveLocations(raw map[string]any) []model.LocationRecord {
	items, ok := raw["locations"].([]any)
	if !ok {
		return nil
	}

	records := make([]model.LocationRecord, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, model.LocationRecord{
			LocationID:        strAt(m, "locationId", ""),
			Enabled:           boolAt(m, "enabled", true),
			PublicName:        strAt(m, "publicName", ""),
			SortOrder:         intAt(m, "sortOrder", model.UnrankedSortOrder),
			RegionGroupID:     strAt(m, "regionGroupId", ""),
			ExcludeFromNearby: boolAt(m, "excludeFromNearby", false),
		})
	}
	return records
}

// === Leaf combinators ===
//
// Validate-or-default accessors applied uniformly across the schema. Each
// returns the raw value only when it exists with the expected primitive
// type.

// sectionAt returns the nested object at key, or nil when absent or not an
// object. A nil section leaves the whole section at its defaults.
func sectionAt(raw map[string]any, key string) map[string]any {
	sec, _ := raw[key].(map[string]any)
	return sec
}

func strAt(sec map[string]any, key, def string) string {
	if v, ok := sec[key].(string); ok {
		return v
	}
	return def
}

func boolAt(sec map[string]any, key string, def bool) bool {
	if v, ok := sec[key].(bool); ok {
		return v
	}
	return def
}

// intAt accepts JSON numbers (float64 after decoding) and native ints from
// programmatic callers; fractional values truncate.
func intAt(sec map[string]any, key string, def int) int {
	switch v := sec[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
