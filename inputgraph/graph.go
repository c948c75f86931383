package inputgraph

// Edge pairs a Dependency with the Asset it resolves to. The planner
// requires every Dependency to resolve to exactly one Asset; a host that
// cannot guarantee this (e.g. conditional/multi-target imports) must resolve
// the ambiguity before handing the graph to the planner.
type Edge struct {
	Dependency *Dependency
	Child      *Asset
}

// EntryPoint is a top-level entry dependency and the Asset it targets. The
// project root that owns these dependencies is not itself an Asset and is
// not modeled here.
type EntryPoint struct {
	Dependency *Dependency
	Asset      *Asset
}

// Graph is the read-only contract the planner consumes. Implementations are
// external collaborators (the upstream build phase); Graph must never be
// mutated by the planner.
type Graph interface {
	// Entries returns every (dependency, asset) pair where dependency.IsEntry
	// is true, in a stable, deterministic order.
	Entries() []EntryPoint

	// OutgoingEdges returns asset's direct dependencies, in a stable,
	// deterministic order.
	OutgoingEdges(asset *Asset) []Edge

	// AssetByID looks up an Asset by its stable ID.
	AssetByID(id string) (*Asset, bool)

	// IncomingDependencies returns the dependencies that resolve to asset,
	// across the whole graph. The planner does not call it; its phases work
	// forward from Entries/OutgoingEdges.
	IncomingDependencies(asset *Asset) []*Dependency

	// Assets returns every Asset in the graph, in a stable, deterministic
	// order. The planner does not call it: phase 4 iterates assets in
	// phase 1's own discovery order.
	Assets() []*Asset
}
