// Package inputgraph models the upstream asset dependency graph as an
// external collaborator: the planner consumes it through the Graph
// interface and never mutates it. The upstream transformer/resolver that
// actually produces this graph is out of scope for this repository (see
// SPEC_FULL.md §1); this package supplies the Asset/Dependency vocabulary
// the planner is grounded on, plus a reference in-memory Graph used by
// tests, fixtures, and the planctl CLI's demo mode.
package inputgraph

// BundleBehavior constrains how an asset may be combined with others in a
// bundle. It mirrors the upstream asset's bundleBehavior field.
type BundleBehavior int

const (
	// BehaviorNormal is the default: the asset may share a bundle freely.
	BehaviorNormal BundleBehavior = iota
	// BehaviorInline forces the asset into its own single-asset bundle,
	// never sharing with a foreign asset.
	BehaviorInline
	// BehaviorIsolated forces a hard code-splitting boundary: the asset
	// never shares a bundle with a foreign asset, and its presence forces
	// descendants onto a fresh bundle as well.
	BehaviorIsolated
)

func (b BundleBehavior) String() string {
	switch b {
	case BehaviorInline:
		return "inline"
	case BehaviorIsolated:
		return "isolated"
	default:
		return "normal"
	}
}

// Priority is a Dependency's load priority.
type Priority int

const (
	// PrioritySync means the dependency must be available synchronously
	// (no network round-trip) before the importing module runs.
	PrioritySync Priority = iota
	// PriorityParallel means the dependency loads alongside its importer
	// (e.g. a parallel <link> or <script>) but is not an async boundary.
	PriorityParallel
	// PriorityLazy means the dependency is a dynamic/async import: a split
	// point.
	PriorityLazy
)

func (p Priority) String() string {
	switch p {
	case PriorityParallel:
		return "parallel"
	case PriorityLazy:
		return "lazy"
	default:
		return "sync"
	}
}

// Env carries the execution environment an Asset was compiled for.
type Env struct {
	// Context distinguishes incompatible runtimes (e.g. "browser", "node",
	// "worker"). The planner compares it only when walking ancestors for an
	// async split; a change of context on a synchronous, same-type edge does
	// not start a new bundle.
	Context string
	// IsIsolated marks an environment boundary, e.g. a web-worker context.
	// It stops the ancestor walk of an async split; on its own, without a
	// lazy edge or an isolated bundleBehavior, it does not start a new bundle.
	IsIsolated bool
}

// Asset is one compiled unit of source as supplied by the upstream graph.
// It is immutable within a planning run.
type Asset struct {
	ID             string
	Type           string
	Env            Env
	BundleBehavior BundleBehavior
	Size           int64 // stats.size; always >= 0
	FilePath       string
}

// Dependency is an edge annotation: how the importer referred to its
// target, and what load-time guarantees that reference carries.
type Dependency struct {
	ID              string
	Priority        Priority
	IsEntry         bool
	Target          string // optional output target name; "" if unset
	BundleBehavior  *BundleBehavior
	NeedsStableName bool
}
