package inputgraph

import "sort"

// MemGraph is a reference, in-memory Graph implementation. It exists for
// tests, the fixture builder (inputgraph/fixture), and the planctl CLI's
// demo mode — the real upstream asset-graph builder is out of scope for
// this repository (see SPEC_FULL.md §1).
//
// MemGraph is a build-then-freeze structure, mirroring core.Graph's own
// "construct, then treat as read-only within a run" contract: callers
// assemble it with AddAsset/AddEdge/AddEntry and then hand it to the
// planner, which never mutates it.
type MemGraph struct {
	assets   map[string]*Asset
	order    []string // asset insertion order, for Assets()
	outgoing map[string][]Edge
	incoming map[string][]*Dependency
	entries  []EntryPoint
}

// NewMemGraph returns an empty MemGraph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		assets:   make(map[string]*Asset),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]*Dependency),
	}
}

// AddAsset registers asset, idempotently (re-adding the same ID is a no-op;
// it does not overwrite an already-registered Asset).
func (m *MemGraph) AddAsset(asset *Asset) {
	if _, ok := m.assets[asset.ID]; ok {
		return
	}
	m.assets[asset.ID] = asset
	m.order = append(m.order, asset.ID)
}

// AddEdge records a dependency edge parent --dep--> child, auto-registering
// both endpoints.
func (m *MemGraph) AddEdge(parent *Asset, dep *Dependency, child *Asset) {
	m.AddAsset(parent)
	m.AddAsset(child)
	m.outgoing[parent.ID] = append(m.outgoing[parent.ID], Edge{Dependency: dep, Child: child})
	m.incoming[child.ID] = append(m.incoming[child.ID], dep)
}

// AddEntry records a top-level entry dependency targeting entryAsset.
func (m *MemGraph) AddEntry(dep *Dependency, entryAsset *Asset) {
	m.AddAsset(entryAsset)
	m.entries = append(m.entries, EntryPoint{Dependency: dep, Asset: entryAsset})
}

// Entries implements Graph.
func (m *MemGraph) Entries() []EntryPoint {
	out := make([]EntryPoint, len(m.entries))
	copy(out, m.entries)
	return out
}

// OutgoingEdges implements Graph.
func (m *MemGraph) OutgoingEdges(asset *Asset) []Edge {
	edges := m.outgoing[asset.ID]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// AssetByID implements Graph.
func (m *MemGraph) AssetByID(id string) (*Asset, bool) {
	a, ok := m.assets[id]
	return a, ok
}

// IncomingDependencies implements Graph.
func (m *MemGraph) IncomingDependencies(asset *Asset) []*Dependency {
	deps := m.incoming[asset.ID]
	out := make([]*Dependency, len(deps))
	copy(out, deps)
	return out
}

// Assets implements Graph, returning assets sorted by ID for deterministic
// iteration (core.Graph.Vertices()'s convention).
func (m *MemGraph) Assets() []*Asset {
	ids := make([]string, 0, len(m.assets))
	for id := range m.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Asset, len(ids))
	for i, id := range ids {
		out[i] = m.assets[id]
	}
	return out
}
