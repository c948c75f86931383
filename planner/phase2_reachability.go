package planner

import "github.com/katalvlaran/bundleplan/inputgraph"

// phase2Reachability computes, for every bundle root, the set of assets
// synchronously reachable from it without crossing a split point (§4.3).
func (p *Planner) phase2Reachability() error {
	for _, asset := range p.discoveryOrder {
		root, ok := p.bundleRoots[asset.ID]
		if !ok {
			continue
		}
		visited := map[string]bool{asset.ID: true}
		p.reachWalk(root, asset, visited)
	}
	return nil
}

func (p *Planner) reachWalk(root BundleRoot, current *inputgraph.Asset, visited map[string]bool) {
	for _, edge := range p.graph.OutgoingEdges(current) {
		dep, child := edge.Dependency, edge.Child

		if p.isSplitPoint(dep) {
			if dep.Priority == inputgraph.PriorityLazy {
				if childRoot, ok := p.bundleRoots[child.ID]; ok {
					set := getOrInsertDefault(p.reachableAsyncRoots, childRoot.BundleID, func() map[string]bool { return make(map[string]bool) })
					set[root.Asset.ID] = true
				}
			}
			continue
		}

		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true

		rootNodeID, _ := p.reachableRoots.AddNodeByContentKey(root.Asset.ID, root.Asset.ID)
		childNodeID, _ := p.reachableRoots.AddNodeByContentKey(child.ID, child.ID)
		_ = p.reachableRoots.AddEdge(rootNodeID, childNodeID, struct{}{})

		p.reachWalk(root, child, visited)
	}
}
