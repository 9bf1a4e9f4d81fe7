package stock

import (
	"slices"
	"strings"

	"instock-widget/internal/model"
)

// Decorate joins each inventory snapshot with its override record and
// capability flags into a display row. Rules per snapshot, in order:
//
//  1. With no records at all, every snapshot is visible under sentinel
//     defaults (platform name, unranked sort order).
//  2. With records present but none matching, the snapshot stays visible
//     under the same defaults; display modes that hide such rows are a
//     presentation concern.
//  3. A matching record with enabled=false drops the row from the output
//     entirely.
//  4. A matching enabled record supplies display name, rank, region key and
//     the nearby exclusion.
//  5. Every surviving row carries the snapshot quantity, the capability
//     flags (false/false when the location is absent from the map) and the
//     snapshot's pickup indicator.
//
// The returned order is the canonical "none" ordering: sortOrder ascending,
// ties by displayName then locationId.
func Decorate(
	snapshots []model.InventorySnapshot,
	records []model.LocationRecord,
	caps map[string]model.CapabilityFlags,
	pinnedLocationID string,
	regionGroups []model.RegionGroup,
) []model.StockRow {
	groupNames := make(map[string]string, len(regionGroups))
	for _, g := range regionGroups {
		groupNames[g.ID] = g.Name
	}
	recordByID := make(map[string]model.LocationRecord, len(records))
	for _, rec := range records {
		if _, exists := recordByID[rec.LocationID]; !exists {
			recordByID[rec.LocationID] = rec
		}
	}

	rows := make([]model.StockRow, 0, len(snapshots))
	for _, snap := range snapshots {
		row := model.StockRow{
			LocationID:         snap.LocationID,
			DisplayName:        snap.LocationName,
			Quantity:           snap.Quantity,
			SortOrder:          model.UnrankedSortOrder,
			RegionKey:          model.RegionKeyUnset,
			StorePickupEnabled: snap.PickupEnabled,
		}

		if rec, ok := recordByID[snap.LocationID]; ok {
			if !rec.Enabled {
				continue
			}
			if rec.PublicName != "" {
				row.DisplayName = rec.PublicName
			}
			row.SortOrder = rec.SortOrder
			row.FromConfig = true
			row.ExcludeFromNearby = rec.ExcludeFromNearby

			switch {
			case pinnedLocationID != "" && snap.LocationID == pinnedLocationID:
				row.RegionKey = model.RegionKeyPinned
			case rec.RegionGroupID != "":
				if name, known := groupNames[rec.RegionGroupID]; known {
					row.RegionKey = name
				}
			}
		}

		if flags, ok := caps[snap.LocationID]; ok {
			row.HasShipping = flags.HasShipping
			row.HasLocalDelivery = flags.HasLocalDelivery
		}

		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b model.StockRow) int {
		if a.SortOrder != b.SortOrder {
			if a.SortOrder < b.SortOrder {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		return strings.Compare(a.LocationID, b.LocationID)
	})

	return rows
}
