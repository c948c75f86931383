package dgraph

import "errors"

// Sentinel errors for dgraph operations. Callers MUST use errors.Is to branch
// on semantics; messages are not part of the contract.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node
	// ID, e.g. AddEdge/ContentGraph.AddEdge against an endpoint that was
	// never created. Lookups (GetNode, GetNodeIDByContentKey, EdgeLabel,
	// HasContentKey) use the "comma ok" idiom instead, matching a plain map
	// read; they never return this error.
	ErrNodeNotFound = errors.New("dgraph: node not found")
)
