package dgraph

import "sync"

// ContentGraph is a directed graph over payload type T whose nodes may be
// addressed by a caller-supplied string content key (an Asset or Dependency
// ID upstream), plus edge labels of type L. It backs asyncBundleRootGraph,
// reachableRoots, and dependencyBundleGraph.
//
// Not every node needs a content key: the synthetic root of
// asyncBundleRootGraph is added via AddNode and is never reachable by
// AddNodeByContentKey.
type ContentGraph[T any, L any] struct {
	muNodes sync.RWMutex
	muEdges sync.RWMutex

	nextID  NodeID
	order   []NodeID
	nodes   map[NodeID]T
	keyToID map[string]NodeID

	out map[NodeID]map[NodeID]L
	in  map[NodeID]map[NodeID]struct{}
}

// NewContent returns an empty ContentGraph.
func NewContent[T any, L any]() *ContentGraph[T, L] {
	return &ContentGraph[T, L]{
		nodes:   make(map[NodeID]T),
		keyToID: make(map[string]NodeID),
		out:     make(map[NodeID]map[NodeID]L),
		in:      make(map[NodeID]map[NodeID]struct{}),
	}
}

// AddNode allocates a node with no content key (used for the synthetic root).
func (g *ContentGraph[T, L]) AddNode(payload T) NodeID {
	return g.insert(payload)
}

// AddNodeByContentKey returns the existing node ID for key if present
// (idempotent); otherwise it allocates a new node carrying payload and
// registers key against it. The second return value reports whether an
// existing node was reused.
func (g *ContentGraph[T, L]) AddNodeByContentKey(key string, payload T) (NodeID, bool) {
	g.muNodes.Lock()
	if id, ok := g.keyToID[key]; ok {
		g.muNodes.Unlock()
		return id, true
	}
	g.muNodes.Unlock()

	id := g.insert(payload)

	g.muNodes.Lock()
	g.keyToID[key] = id
	g.muNodes.Unlock()

	return id, false
}

func (g *ContentGraph[T, L]) insert(payload T) NodeID {
	g.muNodes.Lock()
	g.nextID++
	id := g.nextID
	g.nodes[id] = payload
	g.order = append(g.order, id)
	g.muNodes.Unlock()

	g.muEdges.Lock()
	g.out[id] = make(map[NodeID]L)
	g.in[id] = make(map[NodeID]struct{})
	g.muEdges.Unlock()

	return id
}

// HasContentKey reports whether key has been registered via
// AddNodeByContentKey.
func (g *ContentGraph[T, L]) HasContentKey(key string) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.keyToID[key]
	return ok
}

// GetNodeIDByContentKey returns the node ID registered for key, if any.
func (g *ContentGraph[T, L]) GetNodeIDByContentKey(key string) (NodeID, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	id, ok := g.keyToID[key]
	return id, ok
}

// AddEdge inserts a labeled edge from -> to, overwriting any existing label
// for that pair. Missing endpoints return ErrNodeNotFound.
func (g *ContentGraph[T, L]) AddEdge(from, to NodeID, label L) error {
	if !g.hasNode(from) || !g.hasNode(to) {
		return ErrNodeNotFound
	}
	g.muEdges.Lock()
	defer g.muEdges.Unlock()
	g.out[from][to] = label
	g.in[to][from] = struct{}{}
	return nil
}

// RemoveEdge deletes the from -> to edge if present.
func (g *ContentGraph[T, L]) RemoveEdge(from, to NodeID) {
	g.muEdges.Lock()
	defer g.muEdges.Unlock()
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// GetNode returns the payload for id, or (zero, false) if absent.
func (g *ContentGraph[T, L]) GetNode(id NodeID) (T, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	v, ok := g.nodes[id]
	return v, ok
}

// NodesConnectedFrom returns the IDs reachable by one outgoing edge from id,
// in insertion order.
func (g *ContentGraph[T, L]) NodesConnectedFrom(id NodeID) []NodeID {
	g.muEdges.RLock()
	set := g.out[id]
	ids := make([]NodeID, 0, len(set))
	for to := range set {
		ids = append(ids, to)
	}
	g.muEdges.RUnlock()
	return g.sortedByOrder(ids)
}

// NodesConnectedTo returns the IDs with an outgoing edge into id, in
// insertion order.
func (g *ContentGraph[T, L]) NodesConnectedTo(id NodeID) []NodeID {
	g.muEdges.RLock()
	set := g.in[id]
	ids := make([]NodeID, 0, len(set))
	for from := range set {
		ids = append(ids, from)
	}
	g.muEdges.RUnlock()
	return g.sortedByOrder(ids)
}

// EdgeLabel returns the label of the from -> to edge, if it exists.
func (g *ContentGraph[T, L]) EdgeLabel(from, to NodeID) (L, bool) {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	lbl, ok := g.out[from][to]
	return lbl, ok
}

// Nodes returns every node ID in insertion order.
func (g *ContentGraph[T, L]) Nodes() []NodeID {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

func (g *ContentGraph[T, L]) hasNode(id NodeID) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

func (g *ContentGraph[T, L]) sortedByOrder(ids []NodeID) []NodeID {
	if len(ids) == 0 {
		return nil
	}
	present := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		present[id] = struct{}{}
	}

	g.muNodes.RLock()
	order := g.order
	g.muNodes.RUnlock()

	out := make([]NodeID, 0, len(ids))
	for _, id := range order {
		if _, ok := present[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// topoState marks a node White (unvisited), Gray (on the current DFS stack),
// or Black (fully processed), following dfs.topoSorter's convention.
type topoState int

const (
	white topoState = iota
	gray
	black
)

// TopoSort returns node IDs such that every edge u->v places u before v.
// Unlike dfs.TopologicalSort, it tolerates cycles: a back-edge (target
// already Gray) is treated as if the target were already finalized instead
// of erroring, per the planner's documented handling of cyclic async
// boundaries. Iteration order (and therefore tie-breaking among independent
// components) follows Nodes()'s insertion order.
func (g *ContentGraph[T, L]) TopoSort() []NodeID {
	ids := g.Nodes()
	state := make(map[NodeID]topoState, len(ids))
	order := make([]NodeID, 0, len(ids))

	var visit func(id NodeID)
	visit = func(id NodeID) {
		switch state[id] {
		case gray, black:
			return // back-edge or already processed: treat as finalized
		}
		state[id] = gray
		for _, next := range g.NodesConnectedFrom(id) {
			visit(next)
		}
		state[id] = black
		order = append(order, id)
	}

	for _, id := range ids {
		if state[id] == white {
			visit(id)
		}
	}

	// order is post-order; reverse for topological order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order
}
