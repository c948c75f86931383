package planner

import (
	"sort"
	"strings"

	"github.com/katalvlaran/bundleplan/dgraph"
	"github.com/katalvlaran/bundleplan/inputgraph"
)

// phase4Placement assigns every asset to its owning bundle, synthesizing
// shared bundles where needed and recording async internalizations (§4.5).
func (p *Planner) phase4Placement() error {
	for _, asset := range p.discoveryOrder {
		reachers := p.syncReachers(asset.ID)
		filtered := p.filterReachers(asset.ID, reachers)

		if root, ok := p.bundleRoots[asset.ID]; ok {
			p.placeRoot(asset, root, filtered)
			continue
		}

		switch len(filtered) {
		case 0:
			// unreachable or fully internalized elsewhere: no owner.
		case 1:
			// A single surviving reacher owns a directly; synthesizing a
			// one-source "shared" bundle here would violate the invariant
			// that every shared bundle has at least two sources.
			if reacher, ok := p.bundleRoots[filtered[0]]; ok {
				if bundle, ok := p.bundleGraph.GetNode(reacher.BundleID); ok {
					bundle.addAsset(asset)
				}
			}
		default:
			p.placeShared(asset, filtered)
		}
	}
	return nil
}

// syncReachers returns the bundle-root asset IDs with an edge root->asset in
// reachableRoots, sorted for determinism.
func (p *Planner) syncReachers(assetID string) []string {
	nodeID, ok := p.reachableRoots.GetNodeIDByContentKey(assetID)
	if !ok {
		return nil
	}
	ids := p.reachableRoots.NodesConnectedTo(nodeID)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		rootAssetID, _ := p.reachableRoots.GetNode(id)
		out = append(out, rootAssetID)
	}
	sort.Strings(out)
	return out
}

// filterReachers drops reachers whose ancestorAssets already guarantee
// asset, and reachers where asset's per-group reference count under that
// reacher's bundle-group exceeds one (§4.5 step 2).
func (p *Planner) filterReachers(assetID string, reachers []string) []string {
	out := make([]string, 0, len(reachers))
	for _, r := range reachers {
		if p.ancestorAssets[r][assetID] {
			continue
		}
		if p.groupReferenceCount[r][assetID] > 1 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// placeRoot handles §4.5 step 3's bundle-root branch: wiring group-level
// sharing edges, then resolving async internalization.
func (p *Planner) placeRoot(asset *inputgraph.Asset, root BundleRoot, filteredReachers []string) {
	for _, r := range filteredReachers {
		reacherRoot, ok := p.bundleRoots[r]
		if !ok {
			continue
		}
		_ = p.bundleGraph.AddEdge(reacherRoot.BundleGroupID, root.BundleID)
	}

	reachers := p.syncReachers(asset.ID)
	reachSet := make(map[string]bool, len(reachers))
	for _, r := range reachers {
		reachSet[r] = true
	}

	for lazyRootAssetID := range p.reachableAsyncRoots[root.BundleID] {
		// An empty reachSet means no holder synchronously reaches asset at
		// all (the normal code-split case); isSubset would be vacuously true
		// and internalize an import that is never statically delivered.
		// Internalization requires asset to be *also* statically delivered,
		// per §4.5 — so a holder must actually reach it synchronously first.
		if len(reachSet) == 0 {
			continue
		}
		dom := p.reachableClosure(lazyRootAssetID)
		if !isSubset(reachSet, dom) {
			continue
		}
		lazyRoot, ok := p.bundleRoots[lazyRootAssetID]
		if !ok {
			continue
		}
		if bundle, ok := p.bundleGraph.GetNode(lazyRoot.BundleID); ok {
			bundle.internalize(asset.ID)
		}
	}
}

// reachableClosure computes {rootAssetID} ∪ its transitive reachableBundles
// descendants (§4.5 step 3: "r, or any of its reachableBundles descendants").
func (p *Planner) reachableClosure(rootAssetID string) map[string]bool {
	closure := map[string]bool{rootAssetID: true}
	queue := []string{rootAssetID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for descendant := range p.reachableBundles[cur] {
			if closure[descendant] {
				continue
			}
			closure[descendant] = true
			queue = append(queue, descendant)
		}
	}
	return closure
}

func isSubset(sub, of map[string]bool) bool {
	for id := range sub {
		if !of[id] {
			return false
		}
	}
	return true
}

// placeShared handles §4.5 step 3's shared-bundle branch.
func (p *Planner) placeShared(asset *inputgraph.Asset, filteredReachers []string) {
	key := strings.Join(filteredReachers, ",")

	bundleID, ok := p.sharedBundleByKey[key]
	if !ok {
		var template *inputgraph.Asset
		var env inputgraph.Env
		sourceBundles := make([]dgraph.NodeID, 0, len(filteredReachers))
		for _, r := range filteredReachers {
			reacherRoot := p.bundleRoots[r]
			sourceBundles = append(sourceBundles, reacherRoot.BundleID)
			template = reacherRoot.Asset
		}
		if template != nil {
			env = template.Env
		}

		bundle := newBundle("", env, asset.Type, false, nil)
		bundle.SourceBundles = sourceBundles
		bundleID = p.bundleGraph.AddNode(bundle)
		p.sharedBundleByKey[key] = bundleID

		for _, reacherBundleID := range sourceBundles {
			_ = p.bundleGraph.AddEdge(reacherBundleID, bundleID)
		}
	}

	if bundle, ok := p.bundleGraph.GetNode(bundleID); ok {
		bundle.addAsset(asset)
	}
}
