package planner

// phase6Export freezes the plan for the caller (§4.7). No field is mutated
// after this point.
func (p *Planner) phase6Export() *IdealPlan {
	return &IdealPlan{
		BundleGraph:           p.bundleGraph,
		DependencyBundleGraph: p.dependencyBundleGraph,
		BundleGroupBundleIDs:  p.bundleGroupBundleIDs,
		EntryBundles:          p.entryBundles,
		AssetReference:        p.assetReference,
	}
}
