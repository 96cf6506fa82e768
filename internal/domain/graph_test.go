package domain

import "testing"

func TestGraphAddNode(t *testing.T) {
	t.Run("adding the same node twice is idempotent", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(NewNode("10.0.0.1"))
		g.AddNode(NewNode("10.0.0.1"))

		if len(g.Nodes) != 1 {
			t.Fatalf("expected 1 node, got %d", len(g.Nodes))
		}
	})

	t.Run("MAC observation upgrades an IP-only node", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(NewNode("10.0.0.1"))
		g.AddNode(NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))

		if len(g.Nodes) != 1 {
			t.Fatalf("expected 1 node, got %d", len(g.Nodes))
		}
		if g.Nodes[0].MAC != "fe-ff-ff-ff-ff-ff" {
			t.Errorf("expected stored node to carry the MAC, got %q", g.Nodes[0].MAC)
		}
	})

	t.Run("IP-only observation does not erase a known MAC", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))
		stored := g.AddNode(NewNode("10.0.0.1"))

		if len(g.Nodes) != 1 {
			t.Fatalf("expected 1 node, got %d", len(g.Nodes))
		}
		if stored.MAC != "fe-ff-ff-ff-ff-ff" {
			t.Errorf("expected the stored node back, got %s", stored)
		}
	})

	t.Run("conflicting MACs stay separate entries", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))
		g.AddNode(NewNodeWithMAC("10.0.0.1", "aa-bb-cc-dd-ee-ff"))

		if len(g.Nodes) != 2 {
			t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
		}
	})
}

func TestGraphAddEdge(t *testing.T) {
	t.Run("deduplicates regardless of endpoint order", func(t *testing.T) {
		g := NewGraph()
		if !g.AddEdge("10.0.0.1", "10.0.0.2", EdgeKindDirectNeighbor) {
			t.Fatal("first add should report true")
		}
		if g.AddEdge("10.0.0.2", "10.0.0.1", EdgeKindDirectNeighbor) {
			t.Fatal("reversed duplicate should report false")
		}
		if len(g.Edges) != 1 {
			t.Fatalf("expected 1 edge, got %d", len(g.Edges))
		}
	})

	t.Run("rejects self-loops", func(t *testing.T) {
		g := NewGraph()
		if g.AddEdge("10.0.0.1", "10.0.0.1", EdgeKindPathHop) {
			t.Fatal("self-loop should not be added")
		}
		if len(g.Edges) != 0 {
			t.Fatalf("expected 0 edges, got %d", len(g.Edges))
		}
	})

	t.Run("same endpoints with different kinds are distinct", func(t *testing.T) {
		g := NewGraph()
		g.AddEdge("10.0.0.1", "10.0.0.2", EdgeKindDirectNeighbor)
		g.AddEdge("10.0.0.1", "10.0.0.2", EdgeKindPathHop)
		if len(g.Edges) != 2 {
			t.Fatalf("expected 2 edges, got %d", len(g.Edges))
		}
	})
}

func TestEdgeNormalisation(t *testing.T) {
	a := NewEdge("10.0.0.2", "10.0.0.1", EdgeKindPathHop)
	b := NewEdge("10.0.0.1", "10.0.0.2", EdgeKindPathHop)

	if !a.Same(b) {
		t.Error("edges with swapped endpoints should compare equal")
	}
	if a.ID != b.ID {
		t.Errorf("edge IDs should be order-independent: %s vs %s", a.ID, b.ID)
	}
	if a.A != "10.0.0.1" || a.B != "10.0.0.2" {
		t.Errorf("endpoints not normalised: %s -- %s", a.A, a.B)
	}
}

func TestGraphEqual(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		g.AddNode(NewNodeWithMAC("10.0.0.1", "fe-ff-ff-ff-ff-ff"))
		g.AddNode(NewNode("10.0.0.2"))
		g.AddEdge("10.0.0.1", "10.0.0.2", EdgeKindDirectNeighbor)
		return g
	}

	a, b := build(), build()
	if !a.Equal(b) {
		t.Error("identical graphs should compare equal")
	}

	b.AddEdge("10.0.0.1", "10.0.0.2", EdgeKindPathHop)
	if a.Equal(b) {
		t.Error("graphs with different edge sets should not compare equal")
	}
}
