package planner

import (
	"github.com/katalvlaran/bundleplan/dgraph"
	"github.com/katalvlaran/bundleplan/inputgraph"
)

// Bundle is a mutable, planner-owned record (§3). Size is always kept equal
// to the sum of its assets' Size; callers must go through addAsset rather
// than mutating Assets directly.
type Bundle struct {
	Assets                map[string]*inputgraph.Asset // keyed by asset ID; set, order irrelevant
	InternalizedAssetIDs  []string                      // sequence, ordered by discovery
	SourceBundles         []dgraph.NodeID               // nonempty iff this is a shared bundle
	Size                  int64
	Target                string
	Env                   inputgraph.Env
	Type                  string
	NeedsStableName       bool
	BundleBehavior        *inputgraph.BundleBehavior
}

func newBundle(target string, env inputgraph.Env, typ string, needsStableName bool, behavior *inputgraph.BundleBehavior) *Bundle {
	return &Bundle{
		Assets:          make(map[string]*inputgraph.Asset),
		Target:          target,
		Env:             env,
		Type:            typ,
		NeedsStableName: needsStableName,
		BundleBehavior:  behavior,
	}
}

// addAsset adds a to the bundle if not already present, keeping Size in
// sync. Re-adding the same asset is a no-op.
func (b *Bundle) addAsset(a *inputgraph.Asset) {
	if _, ok := b.Assets[a.ID]; ok {
		return
	}
	b.Assets[a.ID] = a
	b.Size += a.Size
}

// isolatedOrInline reports whether this bundle's behavior forbids sharing
// with a foreign asset (§3 invariant: "isolated and inline assets never
// share a bundle with foreign assets").
func (b *Bundle) isolatedOrInline() bool {
	if b.BundleBehavior == nil {
		return false
	}
	switch *b.BundleBehavior {
	case inputgraph.BehaviorIsolated, inputgraph.BehaviorInline:
		return true
	default:
		return false
	}
}

// internalize appends assetID to InternalizedAssetIDs if not already
// present, preserving discovery order.
func (b *Bundle) internalize(assetID string) {
	for _, id := range b.InternalizedAssetIDs {
		if id == assetID {
			return
		}
	}
	b.InternalizedAssetIDs = append(b.InternalizedAssetIDs, assetID)
}

// BundleRoot is an Asset designated as the entry of a bundle. bundleRoots
// (on Planner) is injective in BundleID: two different assets never map to
// the same bundle.
type BundleRoot struct {
	Asset         *inputgraph.Asset
	BundleID      dgraph.NodeID
	BundleGroupID dgraph.NodeID
}

// AssetReference pairs a Dependency with the Bundle it points into,
// recorded for type-change/inline splits (§4.2 step 2).
type AssetReference struct {
	Dependency *inputgraph.Dependency
	BundleID   dgraph.NodeID
}

// depBundleNodeKind tags dependencyBundleGraph's bipartite node payload.
type depBundleNodeKind int

const (
	nodeKindDependency depBundleNodeKind = iota
	nodeKindBundle
)

// depBundleNode is the tagged-variant payload for dependencyBundleGraph
// (§9: "represent as a tagged variant, not by polymorphism").
type depBundleNode struct {
	Kind       depBundleNodeKind
	Dependency *inputgraph.Dependency
	BundleID   dgraph.NodeID
}

// IdealPlan is the frozen output of Plan (§4.7). No field is mutated after
// export.
type IdealPlan struct {
	BundleGraph           *dgraph.Graph[*Bundle]
	DependencyBundleGraph *dgraph.ContentGraph[depBundleNode, inputgraph.Priority]
	BundleGroupBundleIDs  []dgraph.NodeID
	EntryBundles          []dgraph.NodeID
	AssetReference        map[string][]AssetReference
}
