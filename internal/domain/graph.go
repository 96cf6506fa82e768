package domain

// Graph is the accumulated network topology: a set of unique nodes plus a
// set of edges with no self-loops. Insertion order is preserved so that
// serialised output stays stable across runs.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// FindNode returns the index of the stored node identifying the same host,
// per the identity rule in Node.Equal
func (g *Graph) FindNode(n Node) (int, bool) {
	for i, existing := range g.Nodes {
		if existing.Equal(n) {
			return i, true
		}
	}
	return -1, false
}

// AddNode merges a node into the graph and returns the stored value.
// Adding a node that matches an existing entry is a no-op, except that an
// observation carrying a hardware address replaces a stored entry that
// lacks one.
func (g *Graph) AddNode(n Node) Node {
	i, ok := g.FindNode(n)
	if !ok {
		g.Nodes = append(g.Nodes, n)
		return n
	}
	if g.Nodes[i].MAC == "" && n.MAC != "" {
		g.Nodes[i] = n
	}
	return g.Nodes[i]
}

// HasEdge reports whether an edge with the same endpoints and kind exists
func (g *Graph) HasEdge(e Edge) bool {
	for _, existing := range g.Edges {
		if existing.Same(e) {
			return true
		}
	}
	return false
}

// AddEdge adds an undirected edge between two host IPs. Self-loops and
// duplicates are silently dropped; the return value reports whether the
// edge was actually added.
func (g *Graph) AddEdge(a, b string, kind EdgeKind) bool {
	if a == b {
		return false
	}
	e := NewEdge(a, b, kind)
	if g.HasEdge(e) {
		return false
	}
	g.Edges = append(g.Edges, e)
	return true
}

// Equal reports whether two graphs hold the same node and edge sets,
// ignoring order
func (g *Graph) Equal(other *Graph) bool {
	if len(g.Nodes) != len(other.Nodes) || len(g.Edges) != len(other.Edges) {
		return false
	}
	for _, n := range g.Nodes {
		found := false
		for _, m := range other.Nodes {
			if n.Equal(m) && n.MAC == m.MAC {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, e := range g.Edges {
		if !other.HasEdge(e) {
			return false
		}
	}
	return true
}
