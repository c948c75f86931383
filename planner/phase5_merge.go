package planner

import "github.com/katalvlaran/bundleplan/dgraph"

// phase5MergeAndCleanup removes shared bundles below the configured size
// floor, folds same-type entry siblings back into their entry, and drops
// orphaned async bundle roots (§4.6).
func (p *Planner) phase5MergeAndCleanup() {
	p.mergeSmallShared()
	p.foldEntrySiblings()
	p.dropOrphanAsyncRoots()
}

// mergeSmallShared implements §4.6 step 1.
func (p *Planner) mergeSmallShared() {
	for _, id := range p.bundleGraph.Nodes() {
		bundle, ok := p.bundleGraph.GetNode(id)
		if !ok || len(bundle.SourceBundles) == 0 || bundle.Size >= int64(p.cfg.MinBundleSize) {
			continue
		}
		for _, srcID := range bundle.SourceBundles {
			src, ok := p.bundleGraph.GetNode(srcID)
			if !ok {
				continue
			}
			for _, asset := range bundle.Assets {
				src.addAsset(asset)
			}
		}
		p.bundleGraph.RemoveNode(id)
	}
}

// foldEntrySiblings implements §4.6 step 2.
func (p *Planner) foldEntrySiblings() {
	for _, eBundleID := range p.entryBundles {
		eBundle, ok := p.bundleGraph.GetNode(eBundleID)
		if !ok {
			continue
		}
		eAssetID := p.bundleIDToAssetID[eBundleID]

		for _, sBundleID := range p.groupSiblings[eBundleID] {
			sBundle, ok := p.bundleGraph.GetNode(sBundleID)
			if !ok || sBundle.Type != eBundle.Type {
				continue
			}

			for _, asset := range sBundle.Assets {
				eBundle.addAsset(asset)
			}
			p.bundleGraph.RemoveEdge(eBundleID, sBundleID)
			delete(p.reachableAsyncRoots[sBundleID], eAssetID)

			sBundle.SourceBundles = removeNodeID(sBundle.SourceBundles, eBundleID)
			if len(sBundle.SourceBundles) == 1 {
				lone, ok := p.bundleGraph.GetNode(sBundle.SourceBundles[0])
				if ok {
					for _, asset := range sBundle.Assets {
						lone.addAsset(asset)
					}
					p.bundleGraph.RemoveNode(sBundleID)
				}
			}
		}
	}
}

// dropOrphanAsyncRoots implements §4.6 step 3.
func (p *Planner) dropOrphanAsyncRoots() {
	orphans := make(map[dgraph.NodeID]bool)
	for assetID, root := range p.bundleRoots {
		if !p.lazyOriginBundles[root.BundleID] {
			continue
		}
		if len(p.reachableAsyncRoots[root.BundleID]) == 0 {
			orphans[root.BundleID] = true
			delete(p.bundleRoots, assetID)
			delete(p.bundleIDToAssetID, root.BundleID)
		}
	}
	if len(orphans) == 0 {
		return
	}

	filtered := make([]dgraph.NodeID, 0, len(p.bundleGroupBundleIDs))
	for _, id := range p.bundleGroupBundleIDs {
		if !orphans[id] {
			filtered = append(filtered, id)
		}
	}
	p.bundleGroupBundleIDs = filtered

	for id := range orphans {
		p.bundleGraph.RemoveNode(id)
	}
}

func removeNodeID(ids []dgraph.NodeID, target dgraph.NodeID) []dgraph.NodeID {
	out := make([]dgraph.NodeID, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
