package planner

// phase3AncestorAvailability propagates, along asyncRootGraph's topological
// order, the set of assets guaranteed already loaded whenever a given async
// bundle root is loaded (§4.4).
//
// The upstream algorithm's per-bundle-group reference-count filter is
// flagged by the spec itself as "TODO write this logic better" (§9 open
// questions); the interpretation pinned here folds a root's own
// synchronous reachability with its bundle-group's combined availability
// before propagating to children and siblings, which is the reading that
// satisfies scenarios S2 and S6.
func (p *Planner) phase3AncestorAvailability() {
	order := p.asyncRootGraph.TopoSort()

	for _, nodeID := range order {
		node, _ := p.asyncRootGraph.GetNode(nodeID)
		if node.isSynthetic {
			continue
		}
		b := node.root
		availability := p.groupAvailability(b)

		for _, childID := range p.asyncRootGraph.NodesConnectedFrom(nodeID) {
			childNode, ok := p.asyncRootGraph.GetNode(childID)
			if !ok || childNode.isSynthetic {
				continue
			}
			multiParent := len(p.asyncRootGraph.NodesConnectedTo(childID)) > 1
			p.mergeAvailability(childNode.root.Asset.ID, availability, multiParent)
		}

		for _, siblingBundleID := range p.bundleGraph.NodesConnectedFrom(b.BundleGroupID) {
			siblingAssetID, ok := p.bundleIDToAssetID[siblingBundleID]
			if !ok || siblingAssetID == b.Asset.ID {
				continue
			}
			siblingNodeID, ok := p.asyncRootGraph.GetNodeIDByContentKey(siblingAssetID)
			if !ok {
				continue
			}
			multiParent := len(p.asyncRootGraph.NodesConnectedTo(siblingNodeID)) > 1
			p.mergeAvailability(siblingAssetID, availability, multiParent)
		}
	}
}

// groupAvailability computes combined(b) ∪ group(b): everything
// synchronously reachable from b, b's own existing ancestorAssets, plus the
// own-assets and synchronous reachability of b's non-isolated, non-inline
// bundle-group siblings — recording per-sibling reference counts as it goes
// (§4.4 steps 1–2).
func (p *Planner) groupAvailability(b *BundleRoot) map[string]bool {
	availability := make(map[string]bool)
	for id := range p.ancestorAssets[b.Asset.ID] {
		availability[id] = true
	}

	rootNodeID, ok := p.reachableRoots.GetNodeIDByContentKey(b.Asset.ID)
	if ok {
		for _, reachedID := range p.reachableRoots.NodesConnectedFrom(rootNodeID) {
			assetID, _ := p.reachableRoots.GetNode(reachedID)
			availability[assetID] = true
		}
	}

	refCounts := getOrInsertDefault(p.groupReferenceCount, b.Asset.ID, func() map[string]int { return make(map[string]int) })

	for _, siblingBundleID := range p.bundleGraph.NodesConnectedFrom(b.BundleGroupID) {
		siblingBundle, ok := p.bundleGraph.GetNode(siblingBundleID)
		if !ok || siblingBundle.isolatedOrInline() {
			continue
		}

		for assetID := range siblingBundle.Assets {
			availability[assetID] = true
			refCounts[assetID]++
		}

		siblingAssetID, isRoot := p.bundleIDToAssetID[siblingBundleID]
		if !isRoot {
			continue
		}
		siblingRootNodeID, ok := p.reachableRoots.GetNodeIDByContentKey(siblingAssetID)
		if !ok {
			continue
		}
		for _, reachedID := range p.reachableRoots.NodesConnectedFrom(siblingRootNodeID) {
			assetID, _ := p.reachableRoots.GetNode(reachedID)
			availability[assetID] = true
			refCounts[assetID]++
		}
	}

	return availability
}

// mergeAvailability applies §4.4's asymmetric update rule: intersect when
// the target has more than one parent (guaranteed only if delivered along
// every path), union otherwise.
func (p *Planner) mergeAvailability(assetID string, availability map[string]bool, multiParent bool) {
	existing, ok := p.ancestorAssets[assetID]
	if !ok {
		copied := make(map[string]bool, len(availability))
		for id := range availability {
			copied[id] = true
		}
		p.ancestorAssets[assetID] = copied
		return
	}

	if multiParent {
		for id := range existing {
			if !availability[id] {
				delete(existing, id)
			}
		}
		return
	}

	for id := range availability {
		existing[id] = true
	}
}
