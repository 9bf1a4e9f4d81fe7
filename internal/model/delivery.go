package model

import (
	"encoding/json"
)

// === Delivery profile graph ===
//
// Read-only input describing how the store ships: profiles own location
// groups, each group has member locations and zones, each zone carries its
// method definitions. Decoded straight from the platform response; every
// nested collection is a Connection.

// DeliveryProfile is one shipping profile of the store.
type DeliveryProfile struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	ProfileLocationGroups []ProfileLocationGroup `json:"profileLocationGroups"`
}

// ProfileLocationGroup binds a location group to the zones served from it.
type ProfileLocationGroup struct {
	LocationGroup LocationGroup                 `json:"locationGroup"`
	Zones         Connection[LocationGroupZone] `json:"locationGroupZones"`
}

// LocationGroup is a set of fulfillment locations sharing zone config.
type LocationGroup struct {
	ID        string                    `json:"id"`
	Locations Connection[GraphLocation] `json:"locations"`
}

// GraphLocation is a member location reference inside a group.
type GraphLocation struct {
	ID string `json:"id"`
}

// LocationGroupZone pairs a zone with its method definitions.
type LocationGroupZone struct {
	Zone              Zone                         `json:"zone"`
	MethodDefinitions Connection[MethodDefinition] `json:"methodDefinitions"`
}

// Zone is a shipping area. Its name is merchant-edited free text and the
// only hint whether the zone is a local-delivery area.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MethodDefinition is one fulfillment method offered in a zone.
type MethodDefinition struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Active       bool         `json:"active"`
	RateProvider RateProvider `json:"rateProvider"`
}

// RateProviderKind is the closed set of rate provider variants the platform
// exposes. The API discriminates them only by GraphQL __typename.
type RateProviderKind int

const (
	// RateProviderUnknown covers null providers and typenames added after
	// this code shipped. Treated like a rate definition during aggregation.
	RateProviderUnknown RateProviderKind = iota

	// RateProviderParticipant is a carrier-calculated method.
	RateProviderParticipant

	// RateProviderRateDefinition is a flat-rate or custom-priced method.
	RateProviderRateDefinition
)

const (
	typenameParticipant    = "DeliveryParticipant"
	typenameRateDefinition = "DeliveryRateDefinition"
)

// String returns the GraphQL typename for known kinds.
func (k RateProviderKind) String() string {
	switch k {
	case RateProviderParticipant:
		return typenameParticipant
	case RateProviderRateDefinition:
		return typenameRateDefinition
	default:
		return "Unknown"
	}
}

// RateProvider tags a method definition with its provider kind.
type RateProvider struct {
	Kind RateProviderKind
}

// UnmarshalJSON decodes the {"__typename": "..."} discriminator object.
// Null and unrecognized typenames become RateProviderUnknown.
func (r *RateProvider) UnmarshalJSON(data []byte) error {
	r.Kind = RateProviderUnknown
	if string(data) == "null" {
		return nil
	}

	var raw struct {
		TypeName string `json:"__typename"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.TypeName {
	case typenameParticipant:
		r.Kind = RateProviderParticipant
	case typenameRateDefinition:
		r.Kind = RateProviderRateDefinition
	}
	return nil
}

// MarshalJSON writes the discriminator object back out.
func (r RateProvider) MarshalJSON() ([]byte, error) {
	if r.Kind == RateProviderUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		TypeName string `json:"__typename"`
	}{TypeName: r.Kind.String()})
}
