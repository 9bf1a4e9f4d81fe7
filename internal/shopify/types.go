package shopify

import (
	"encoding/json"

	"instock-widget/internal/model"
)

// =============================================================================
// ADMIN GRAPHQL WIRE TYPES
// =============================================================================
//
// Everything the widget needs comes from three documents:
//
//   variantAvailabilityQuery  inventory levels for one variant + the shop
//                             settings metafield, in a single round trip
//   deliveryProfilesQuery     the shipping configuration graph
//   setSettingsMutation       writes the merged settings blob back
//
// Collections decode through model.Connection so both the nodes and edges
// shapes the API has used over the years are accepted.
// =============================================================================

const (
	// metafieldNamespace and metafieldKey locate the shop-scoped settings
	// slot. The admin UI and this service read and write the same slot.
	metafieldNamespace = "instock"
	metafieldKey       = "settings"
)

// graphqlRequest is the POST body for /graphql.json.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the uniform Admin API response envelope. GraphQL-level
// failures arrive as HTTP 200 with a populated errors array.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// === Variant availability ===

const variantAvailabilityQuery = `
query VariantAvailability($id: ID!, $namespace: String!, $key: String!) {
  productVariant(id: $id) {
    id
    inventoryItem {
      inventoryLevels(first: 50) {
        nodes {
          quantities(names: ["available"]) {
            name
            quantity
          }
          location {
            id
            name
            fulfillsOnlineOrders
            localPickupSettingsV2 {
              instructions
            }
            address {
              address1
              address2
              city
              provinceCode
              zip
              countryCode
            }
          }
        }
      }
    }
  }
  shop {
    id
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}`

type variantAvailabilityData struct {
	ProductVariant *variantNode `json:"productVariant"`
	Shop           shopNode     `json:"shop"`
}

type variantNode struct {
	ID            string `json:"id"`
	InventoryItem struct {
		InventoryLevels model.Connection[inventoryLevelNode] `json:"inventoryLevels"`
	} `json:"inventoryItem"`
}

type inventoryLevelNode struct {
	Quantities []quantityNode `json:"quantities"`
	Location   locationNode   `json:"location"`
}

type quantityNode struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type locationNode struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	FulfillsOnlineOrders bool           `json:"fulfillsOnlineOrders"`
	LocalPickupSettings  *pickupNode    `json:"localPickupSettingsV2"`
	Address              *model.Address `json:"address"`
}

// pickupNode is non-nil exactly when local pickup is enabled for a location.
type pickupNode struct {
	Instructions string `json:"instructions"`
}

type shopNode struct {
	ID        string `json:"id"`
	Metafield *struct {
		Value string `json:"value"`
	} `json:"metafield"`
}

// === Shop settings ===

const shopSettingsQuery = `
query WidgetSettings($namespace: String!, $key: String!) {
  shop {
    id
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}`

type shopSettingsData struct {
	Shop shopNode `json:"shop"`
}

const setSettingsMutation = `
mutation SetWidgetSettings($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

type setSettingsData struct {
	MetafieldsSet struct {
		Metafields []struct {
			ID string `json:"id"`
		} `json:"metafields"`
		UserErrors []userError `json:"userErrors"`
	} `json:"metafieldsSet"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// === Delivery profiles ===

const deliveryProfilesQuery = `
query DeliveryProfiles($first: Int!) {
  deliveryProfiles(first: $first) {
    nodes {
      id
      name
      profileLocationGroups {
        locationGroup {
          id
          locations(first: 100) {
            nodes {
              id
            }
          }
        }
        locationGroupZones(first: 50) {
          nodes {
            zone {
              id
              name
            }
            methodDefinitions(first: 50) {
              nodes {
                id
                name
                active
                rateProvider {
                  __typename
                }
              }
            }
          }
        }
      }
    }
  }
}`

type deliveryProfilesData struct {
	DeliveryProfiles model.Connection[model.DeliveryProfile] `json:"deliveryProfiles"`
}
