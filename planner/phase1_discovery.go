package planner

import (
	"github.com/katalvlaran/bundleplan/dgraph"
	"github.com/katalvlaran/bundleplan/inputgraph"
)

// frame is one entry of phase 1's ancestor stack: the nearest enclosing
// bundle-root asset and its bundle-group id (§4.2 split pass).
type frame struct {
	asset   *inputgraph.Asset
	groupID dgraph.NodeID
}

// phase1Discovery walks the input graph twice: an entry pass that creates
// one bundle per entry dependency, and a split pass that creates further
// bundles at async, type-change, and inline boundaries (§4.2).
func (p *Planner) phase1Discovery() error {
	for _, ep := range p.graph.Entries() {
		if ep.Dependency == nil || ep.Asset == nil {
			return invariantf("entry-has-asset-and-dependency", "entry point missing asset or dependency")
		}
		p.createEntryBundle(ep.Dependency, ep.Asset)
	}

	for _, ep := range p.graph.Entries() {
		root := p.bundleRoots[ep.Asset.ID]
		frames := []frame{{asset: ep.Asset, groupID: root.BundleGroupID}}
		visited := map[string]bool{ep.Asset.ID: true}
		p.splitWalk(ep.Asset, frames, visited)
	}

	return nil
}

func (p *Planner) createEntryBundle(dep *inputgraph.Dependency, asset *inputgraph.Asset) {
	p.markDiscovered(asset)

	if _, exists := p.bundleRoots[asset.ID]; exists {
		return
	}

	var behavior *inputgraph.BundleBehavior
	if asset.BundleBehavior != inputgraph.BehaviorNormal {
		b := asset.BundleBehavior
		behavior = &b
	}
	bundle := newBundle(dep.Target, asset.Env, asset.Type, dep.IsEntry, behavior)
	bundle.addAsset(asset)
	bundleID := p.bundleGraph.AddNode(bundle)

	p.bundleRoots[asset.ID] = BundleRoot{Asset: asset, BundleID: bundleID, BundleGroupID: bundleID}
	p.bundleIDToAssetID[bundleID] = asset.ID
	p.bundleGroupBundleIDs = append(p.bundleGroupBundleIDs, bundleID)
	p.entryBundles = append(p.entryBundles, bundleID)

	childNodeID, _ := p.asyncRootGraph.AddNodeByContentKey(asset.ID, asyncRootNode{root: &BundleRoot{Asset: asset, BundleID: bundleID, BundleGroupID: bundleID}})
	_ = p.asyncRootGraph.AddEdge(p.syntheticRootID, childNodeID, struct{}{})
}

func (p *Planner) markDiscovered(a *inputgraph.Asset) {
	if p.discovered[a.ID] {
		return
	}
	p.discovered[a.ID] = true
	p.discoveryOrder = append(p.discoveryOrder, a)
}

// splitWalk is the split pass's DFS. frames is copied (not mutated in
// place) on push so that siblings exploring different subtrees never see
// each other's frame. visited prevents descending twice into the same
// asset; it also serves as the cycle guard (an asset becomes visited
// before its own children are explored).
func (p *Planner) splitWalk(current *inputgraph.Asset, frames []frame, visited map[string]bool) {
	for _, edge := range p.graph.OutgoingEdges(current) {
		dep, child := edge.Dependency, edge.Child
		p.markDiscovered(child)

		switch {
		case dep.Priority == inputgraph.PriorityLazy || child.BundleBehavior == inputgraph.BehaviorIsolated:
			p.asyncSplit(dep, child, frames)
		case current.Type != child.Type || child.BundleBehavior == inputgraph.BehaviorInline:
			p.typeChangeSplit(dep, child, frames)
		}

		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true

		childFrames := frames
		if root, ok := p.bundleRoots[child.ID]; ok {
			childFrames = append(append([]frame{}, frames...), frame{asset: child, groupID: root.BundleGroupID})
		}
		p.splitWalk(child, childFrames, visited)
	}
}

// asyncSplit implements §4.2 step 1.
func (p *Planner) asyncSplit(dep *inputgraph.Dependency, child *inputgraph.Asset, frames []frame) {
	top := frames[len(frames)-1]

	root, existed := p.bundleRoots[child.ID]
	bundleID := root.BundleID
	if !existed {
		target := ""
		if b, ok := p.bundleGraph.GetNode(top.groupID); ok {
			target = b.Target
		}

		inlineEither := child.BundleBehavior == inputgraph.BehaviorInline ||
			(dep.BundleBehavior != nil && *dep.BundleBehavior == inputgraph.BehaviorInline)
		needsStableName := false
		if !inlineEither {
			needsStableName = dep.IsEntry || dep.NeedsStableName
		}

		behavior := dep.BundleBehavior
		if behavior == nil {
			b := child.BundleBehavior
			behavior = &b
		}

		bundle := newBundle(target, child.Env, child.Type, needsStableName, behavior)
		bundle.addAsset(child)
		bundleID = p.bundleGraph.AddNode(bundle)

		root = BundleRoot{Asset: child, BundleID: bundleID, BundleGroupID: bundleID}
		p.bundleRoots[child.ID] = root
		p.bundleIDToAssetID[bundleID] = child.ID
		p.bundleGroupBundleIDs = append(p.bundleGroupBundleIDs, bundleID)
		if dep.Priority == inputgraph.PriorityLazy {
			p.lazyOriginBundles[bundleID] = true
		}
	}

	childAsyncNodeID, _ := p.asyncRootGraph.AddNodeByContentKey(child.ID, asyncRootNode{root: &root})
	p.depBundleEdge(dep, bundleID, dep.Priority)

	for i := len(frames) - 1; i >= 0; i-- {
		anc := frames[i].asset
		if anc.Type != child.Type || anc.Env.Context != child.Env.Context || anc.Env.IsIsolated {
			break
		}
		set := getOrInsertDefault(p.reachableBundles, anc.ID, func() map[string]bool { return make(map[string]bool) })
		set[child.ID] = true
	}

	topRoot := p.bundleRoots[top.asset.ID]
	topNodeID, _ := p.asyncRootGraph.AddNodeByContentKey(top.asset.ID, asyncRootNode{root: &topRoot})
	_ = p.asyncRootGraph.AddEdge(topNodeID, childAsyncNodeID, struct{}{})
}

// typeChangeSplit implements §4.2 step 2.
func (p *Planner) typeChangeSplit(dep *inputgraph.Dependency, child *inputgraph.Asset, frames []frame) {
	top := frames[len(frames)-1]

	root, existed := p.bundleRoots[child.ID]
	bundleID := root.BundleID
	if !existed {
		target := ""
		if b, ok := p.bundleGraph.GetNode(top.groupID); ok {
			target = b.Target
		}

		needsStableName := dep.BundleBehavior != nil && *dep.BundleBehavior == inputgraph.BehaviorInline

		var behavior *inputgraph.BundleBehavior
		if child.BundleBehavior == inputgraph.BehaviorInline {
			b := inputgraph.BehaviorInline
			behavior = &b
		} else if dep.BundleBehavior != nil {
			behavior = dep.BundleBehavior
		}

		bundle := newBundle(target, child.Env, child.Type, needsStableName, behavior)
		bundle.addAsset(child)
		bundleID = p.bundleGraph.AddNode(bundle)

		root = BundleRoot{Asset: child, BundleID: bundleID, BundleGroupID: top.groupID}
		p.bundleRoots[child.ID] = root
		p.bundleIDToAssetID[bundleID] = child.ID
		_ = p.bundleGraph.AddEdge(top.groupID, bundleID)
		p.groupSiblings[top.groupID] = append(p.groupSiblings[top.groupID], bundleID)
	}

	p.assetReference[child.ID] = append(p.assetReference[child.ID], AssetReference{Dependency: dep, BundleID: bundleID})
	p.depBundleEdge(dep, bundleID, inputgraph.PriorityParallel)
}
