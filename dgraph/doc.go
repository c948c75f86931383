// Package dgraph provides the two graph primitives the planner is built on:
// a plain directed Graph and a content-addressed ContentGraph.
//
// Both are generic over node payload type and carry the locking discipline
// of lvlath's core.Graph: one RWMutex guarding node storage, a second
// guarding edge/adjacency storage, never held together. Unlike core.Graph
// (which models a user-facing Vertex/Edge graph with weights and loops),
// these types model the planner's internal bookkeeping graphs and have no
// domain vocabulary of their own — callers attach meaning via the payload
// and label type parameters.
//
// Node IDs are opaque, monotonically increasing integers, stable within a
// run. ContentGraph additionally keys nodes by a caller-supplied string
// content key (an Asset or Dependency ID in the planner); AddNodeByContentKey
// is idempotent on that key.
//
// ContentGraph.TopoSort tolerates cycles: back-edges are treated as if the
// target were already finalized, so a cyclic asyncBundleRootGraph (possible
// when the upstream asset graph has a dependency cycle crossing an async
// boundary) still yields a usable order instead of an error. Ties are broken
// by insertion order.
package dgraph
