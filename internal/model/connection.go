package model

// Connection is a nested collection as the platform API returns it. The same
// logical list arrives either materialized under "nodes" or as edge/node
// pairs under "edges", depending on the query and API version. List is the
// single place that normalizes the two shapes; callers never probe them.
type Connection[T any] struct {
	Nodes []T       `json:"nodes"`
	Edges []Edge[T] `json:"edges"`
}

// Edge wraps one node of an edge-shaped connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// List returns the collection as a plain slice. A present nodes array wins,
// then edges, then nil for an absent or null connection.
func (c Connection[T]) List() []T {
	if c.Nodes != nil {
		return c.Nodes
	}
	if c.Edges != nil {
		out := make([]T, 0, len(c.Edges))
		for _, e := range c.Edges {
			out = append(out, e.Node)
		}
		return out
	}
	return nil
}
