// Package planner implements the ideal-bundle planner: a pure function
//
//	Plan(inputGraph, config) → IdealPlan
//
// structured as the six-phase pipeline described in SPEC_FULL.md §§2–4:
// entry & split-point discovery, synchronous reachability, ancestor
// availability, placement, merge & cleanup, and plan export. It operates
// entirely over in-memory graphs; it never touches a filesystem, a
// network, or a clock.
//
// Glossary (carried forward from the distilled spec):
//
//   - Asset: one compiled unit of source as supplied by the upstream graph.
//   - Bundle: a set of assets shipped together as one output artifact.
//   - Bundle group: bundles loaded atomically for one navigation; one main
//     bundle plus siblings of compatible type.
//   - Bundle root: the asset designated as the entry of its bundle.
//   - Shared bundle: a bundle with len(SourceBundles) >= 2.
//   - Internalized asset: an async import statically guaranteed loaded,
//     whose import becomes a no-op lookup.
//   - Synchronous reachability: reachable through sync/parallel edges
//     without crossing a split point.
//   - Ancestor availability: assets guaranteed loaded at a bundle root
//     along every path from all entries.
//   - Split point: an edge that forces a new bundle — async, type change,
//     or isolation boundary.
package planner

import (
	"fmt"

	"github.com/katalvlaran/bundleplan/config"
	"github.com/katalvlaran/bundleplan/dgraph"
	"github.com/katalvlaran/bundleplan/inputgraph"
)

// asyncRootNode is asyncBundleRootGraph's node payload: either the
// synthetic root, or a BundleRoot.
type asyncRootNode struct {
	root        *BundleRoot // nil for the synthetic root
	isSynthetic bool
}

// Planner holds the mutable state of one planning run. Per §9 ("Mutable
// shared state"), the three/four internal graphs and their bookkeeping are
// fields of this struct, not loose parameters threaded between phases.
type Planner struct {
	graph inputgraph.Graph
	cfg   *config.Resolved

	// The three internal graphs named in §3, plus dependencyBundleGraph.
	bundleGraph           *dgraph.Graph[*Bundle]
	asyncRootGraph        *dgraph.ContentGraph[asyncRootNode, struct{}]
	reachableRoots        *dgraph.ContentGraph[string, struct{}] // keyed & payload = asset ID
	dependencyBundleGraph *dgraph.ContentGraph[depBundleNode, inputgraph.Priority]

	syntheticRootID dgraph.NodeID

	// bundleRoots: Asset ID -> BundleRoot. Injective in BundleID (§3).
	bundleRoots map[string]BundleRoot
	// bundleIDToAssetID is the inverse of bundleRoots, for looking up
	// "is this bundle node itself a bundle root, and if so which asset".
	bundleIDToAssetID map[dgraph.NodeID]string

	bundleGroupBundleIDs []dgraph.NodeID
	entryBundles         []dgraph.NodeID // in phase-1 discovery order

	// assetReference: child Asset ID -> recorded (dependency, bundle) pairs
	// from type-change/inline splits (§4.2 step 2).
	assetReference map[string][]AssetReference

	// reachableBundles: ancestor Asset ID -> set of async-bundle-root Asset
	// IDs reached while walking the frame stack for an async split (§4.2
	// step 1).
	reachableBundles map[string]map[string]bool

	// reachableAsyncRoots: async child Bundle ID -> set of bundle-root Asset
	// IDs that can lazily reach it (§4.3).
	reachableAsyncRoots map[dgraph.NodeID]map[string]bool

	// discoveryOrder is every Asset encountered during phase 1's split pass,
	// in DFS discovery order (§4.5 consumes it verbatim).
	discoveryOrder []*inputgraph.Asset
	discovered     map[string]bool

	// ancestorAssets: bundle-root Asset ID -> set of Asset IDs guaranteed
	// already loaded whenever that root is loaded (§4.4).
	ancestorAssets map[string]map[string]bool

	// groupReferenceCount: bundle-group-root Asset ID -> Asset ID -> number
	// of sibling roots in that group carrying the asset (§4.4 step 2).
	groupReferenceCount map[string]map[string]int

	// sharedBundleByKey: sorted-concatenated reacher-id key -> shared bundle
	// node id, for phase 4 step 3's reuse-by-key rule.
	sharedBundleByKey map[string]dgraph.NodeID

	// lazyOriginBundles marks bundles created because of a lazy-priority
	// dependency (as opposed to an isolated-env split on an otherwise
	// synchronous edge). Only these are candidates for phase 5's
	// orphan-drop: an isolated bundle reached synchronously is never
	// orphaned just because nothing imports it lazily.
	lazyOriginBundles map[dgraph.NodeID]bool

	// groupSiblings: bundle-group id -> bundle ids created by a type-change
	// or inline split directly under that group (§4.2 step 2). Phase 5's
	// entry-sibling fold walks this, not bundleGraph's raw out-edges from
	// an entry, since those out-edges also carry cross-entry reachability
	// and shared-bundle-source edges added in phase 4 that must not be
	// folded away.
	groupSiblings map[dgraph.NodeID][]dgraph.NodeID
}

func newPlanner(g inputgraph.Graph, cfg *config.Resolved) *Planner {
	p := &Planner{
		graph:                 g,
		cfg:                   cfg,
		bundleGraph:           dgraph.New[*Bundle](),
		asyncRootGraph:        dgraph.NewContent[asyncRootNode, struct{}](),
		reachableRoots:        dgraph.NewContent[string, struct{}](),
		dependencyBundleGraph: dgraph.NewContent[depBundleNode, inputgraph.Priority](),
		bundleRoots:           make(map[string]BundleRoot),
		bundleIDToAssetID:     make(map[dgraph.NodeID]string),
		assetReference:        make(map[string][]AssetReference),
		reachableBundles:      make(map[string]map[string]bool),
		reachableAsyncRoots:   make(map[dgraph.NodeID]map[string]bool),
		discovered:            make(map[string]bool),
		ancestorAssets:        make(map[string]map[string]bool),
		groupReferenceCount:   make(map[string]map[string]int),
		sharedBundleByKey:     make(map[string]dgraph.NodeID),
		lazyOriginBundles:     make(map[dgraph.NodeID]bool),
		groupSiblings:         make(map[dgraph.NodeID][]dgraph.NodeID),
	}
	p.syntheticRootID = p.asyncRootGraph.AddNode(asyncRootNode{isSynthetic: true})
	return p
}

// Plan runs the full six-phase pipeline over inputGraph and cfg and returns
// the resulting IdealPlan. It is a pure function: inputGraph is never
// mutated, and two calls with structurally identical inputs produce
// structurally identical plans (§5, §8 property 7).
func Plan(inputGraph inputgraph.Graph, cfg *config.Resolved) (*IdealPlan, error) {
	p := newPlanner(inputGraph, cfg)

	if err := p.phase1Discovery(); err != nil {
		return nil, err
	}
	if err := p.phase2Reachability(); err != nil {
		return nil, err
	}
	p.phase3AncestorAvailability()
	if err := p.phase4Placement(); err != nil {
		return nil, err
	}
	p.phase5MergeAndCleanup()

	return p.phase6Export(), nil
}

// getOrInsertDefault is the explicit get-or-insert-default primitive called
// for by §9 ("prefer an explicit get-or-insert-default primitive with a
// factory closure; do not emulate implicit instantiation on read").
func getOrInsertDefault[K comparable, V any](m map[K]V, key K, factory func() V) V {
	if v, ok := m[key]; ok {
		return v
	}
	v := factory()
	m[key] = v
	return v
}

func depContentKey(dep *inputgraph.Dependency) string {
	return "dep:" + dep.ID
}

func bundleContentKey(id dgraph.NodeID) string {
	return fmt.Sprintf("bundle:%d", id)
}

// depBundleEdge registers dep and bundle as dependencyBundleGraph nodes (if
// not already present) and labels the edge between them with priority.
func (p *Planner) depBundleEdge(dep *inputgraph.Dependency, bundleID dgraph.NodeID, priority inputgraph.Priority) {
	depNodeID, _ := p.dependencyBundleGraph.AddNodeByContentKey(depContentKey(dep), depBundleNode{Kind: nodeKindDependency, Dependency: dep})
	bundleNodeID, _ := p.dependencyBundleGraph.AddNodeByContentKey(bundleContentKey(bundleID), depBundleNode{Kind: nodeKindBundle, BundleID: bundleID})
	_ = p.dependencyBundleGraph.AddEdge(depNodeID, bundleNodeID, priority)
}

// isSplitPoint reports whether dep already has a recorded dependency->bundle
// edge, i.e. phase 1 treated it as an async or type-change split point.
func (p *Planner) isSplitPoint(dep *inputgraph.Dependency) bool {
	return p.dependencyBundleGraph.HasContentKey(depContentKey(dep))
}
