package capability

import (
	"instock-widget/internal/model"
)

// Aggregate walks the delivery profile graph and derives each location's
// {hasShipping, hasLocalDelivery} flags. Flags only ever merge upward: once
// a location has a capability, more graph data never takes it away.
//
// Per zone, a local-delivery-like zone name marks every member location as
// local delivery regardless of the zone's methods. Per active method, the
// rate provider kind decides the branch: carrier-calculated methods always
// mean shipping (and local delivery too when the method name reads local);
// flat-rate and custom methods mean local delivery when the name reads
// local, otherwise shipping. Inactive methods are ignored.
//
// A nil or empty graph yields an empty map. The caller passes nil when the
// profile fetch failed upstream; that degraded state is valid, not an error.
func Aggregate(profiles []model.DeliveryProfile) map[string]model.CapabilityFlags {
	caps := make(map[string]model.CapabilityFlags)

	for _, profile := range profiles {
		for _, group := range profile.ProfileLocationGroups {
			members := memberIDs(group.LocationGroup.Locations.List())
			if len(members) == 0 {
				continue
			}

			for _, zone := range group.Zones.List() {
				if IsLocalDeliveryLabel(zone.Zone.Name) {
					mark(caps, members, model.CapabilityFlags{HasLocalDelivery: true})
				}

				for _, def := range zone.MethodDefinitions.List() {
					if !def.Active {
						continue
					}

					switch def.RateProvider.Kind {
					case model.RateProviderParticipant:
						flags := model.CapabilityFlags{HasShipping: true}
						if IsLocalDeliveryLabel(def.Name) {
							flags.HasLocalDelivery = true
						}
						mark(caps, members, flags)
					default:
						// Flat-rate, custom, and unknown providers.
						if IsLocalDeliveryLabel(def.Name) {
							mark(caps, members, model.CapabilityFlags{HasLocalDelivery: true})
						} else {
							mark(caps, members, model.CapabilityFlags{HasShipping: true})
						}
					}
				}
			}
		}
	}

	return caps
}

func memberIDs(locations []model.GraphLocation) []string {
	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		if loc.ID != "" {
			ids = append(ids, loc.ID)
		}
	}
	return ids
}

// mark ORs the given flags into every listed location.
func mark(caps map[string]model.CapabilityFlags, ids []string, flags model.CapabilityFlags) {
	for _, id := range ids {
		cur := caps[id]
		cur.HasShipping = cur.HasShipping || flags.HasShipping
		cur.HasLocalDelivery = cur.HasLocalDelivery || flags.HasLocalDelivery
		caps[id] = cur
	}
}
