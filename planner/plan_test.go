package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bundleplan/config"
	"github.com/katalvlaran/bundleplan/inputgraph"
	"github.com/katalvlaran/bundleplan/inputgraph/fixture"
)

func defaultConfig() *config.Resolved {
	return config.Resolve(config.WithMinBundleSize(20000))
}

// bundleContaining returns the first bundle (in insertion order) whose
// Assets set contains assetID, or nil if none does.
func bundleContaining(plan *IdealPlan, assetID string) *Bundle {
	for _, id := range plan.BundleGraph.Nodes() {
		b, ok := plan.BundleGraph.GetNode(id)
		if !ok {
			continue
		}
		if _, ok := b.Assets[assetID]; ok {
			return b
		}
	}
	return nil
}

func bundleCount(plan *IdealPlan) int {
	return len(plan.BundleGraph.Nodes())
}

// S1 — Single entry, no splits.
func TestPlan_S1_SingleEntryNoSplits(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "js", 1000)
	a := b.Asset("A", "js", 2000)
	bb := b.Asset("B", "js", 3000)
	b.Entry(e, "entry-E")
	b.Edge(e, a, "dep-A", inputgraph.PrioritySync)
	b.Edge(e, bb, "dep-B", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	require.Equal(t, 1, bundleCount(plan))
	bundle := bundleContaining(plan, "E")
	require.NotNil(t, bundle)
	assert.Contains(t, bundle.Assets, "A")
	assert.Contains(t, bundle.Assets, "B")
	assert.Equal(t, int64(6000), bundle.Size)
}

// S2 — Async import deduplicated by ancestor.
func TestPlan_S2_AsyncDedupedByAncestor(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "js", 1000)
	u := b.Asset("U", "js", 2000)
	l := b.Asset("L", "js", 500)
	b.Entry(e, "entry-E")
	b.Edge(e, u, "dep-U", inputgraph.PrioritySync)
	b.Edge(e, l, "dep-L", inputgraph.PriorityLazy)
	b.Edge(l, u, "dep-U2", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	eBundle := bundleContaining(plan, "E")
	require.NotNil(t, eBundle)
	assert.Contains(t, eBundle.Assets, "U")
	// L is never statically delivered to E (nothing sync-reaches it), so it
	// must not be internalized: the host must still fetch import('L').
	assert.NotContains(t, eBundle.InternalizedAssetIDs, "L")

	lBundle := bundleContaining(plan, "L")
	require.NotNil(t, lBundle)
	assert.NotContains(t, lBundle.Assets, "U")
}

// S3 — Shared bundle creation.
func TestPlan_S3_SharedBundleCreation(t *testing.T) {
	b := fixture.New()
	e1 := b.Asset("E1", "js", 1000)
	e2 := b.Asset("E2", "js", 1000)
	s := b.Asset("S", "js", 40000)
	b.Entry(e1, "entry-E1")
	b.Entry(e2, "entry-E2")
	b.Edge(e1, s, "dep-S1", inputgraph.PrioritySync)
	b.Edge(e2, s, "dep-S2", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), config.Resolve(config.WithMinBundleSize(20000)))
	require.NoError(t, err)

	e1Bundle := bundleContaining(plan, "E1")
	e2Bundle := bundleContaining(plan, "E2")
	sharedBundle := bundleContaining(plan, "S")
	require.NotNil(t, sharedBundle)

	assert.NotContains(t, e1Bundle.Assets, "S")
	assert.NotContains(t, e2Bundle.Assets, "S")
	assert.Len(t, sharedBundle.SourceBundles, 2)
	assert.Equal(t, int64(40000), sharedBundle.Size)
}

// S4 — Small shared bundle merged back into its sources.
func TestPlan_S4_SmallSharedMerged(t *testing.T) {
	b := fixture.New()
	e1 := b.Asset("E1", "js", 1000)
	e2 := b.Asset("E2", "js", 1000)
	s := b.Asset("S", "js", 5000)
	b.Entry(e1, "entry-E1")
	b.Entry(e2, "entry-E2")
	b.Edge(e1, s, "dep-S1", inputgraph.PrioritySync)
	b.Edge(e2, s, "dep-S2", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), config.Resolve(config.WithMinBundleSize(20000)))
	require.NoError(t, err)

	e1Bundle := bundleContaining(plan, "E1")
	e2Bundle := bundleContaining(plan, "E2")
	require.NotNil(t, e1Bundle)
	require.NotNil(t, e2Bundle)
	assert.Contains(t, e1Bundle.Assets, "S")
	assert.Contains(t, e2Bundle.Assets, "S")

	for _, id := range plan.BundleGraph.Nodes() {
		bundle, _ := plan.BundleGraph.GetNode(id)
		assert.Empty(t, bundle.SourceBundles, "no shared bundle should survive below minBundleSize")
	}
}

// S5 — Type-change split.
func TestPlan_S5_TypeChangeSplit(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "a", 1000)
	c := b.Asset("C", "b", 2000)
	b.Entry(e, "entry-E")
	b.Edge(e, c, "dep-C", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	eBundle := bundleContaining(plan, "E")
	cBundle := bundleContaining(plan, "C")
	require.NotNil(t, eBundle)
	require.NotNil(t, cBundle)
	assert.NotSame(t, eBundle, cBundle)
	assert.NotContains(t, eBundle.Assets, "C")
	assert.Equal(t, "a", eBundle.Type)
	assert.Equal(t, "b", cBundle.Type)
}

// S6 — Async internalization.
func TestPlan_S6_AsyncInternalization(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "js", 1000)
	x := b.Asset("X", "js", 2000)
	b.Entry(e, "entry-E")
	b.Edge(e, x, "dep-X-sync", inputgraph.PrioritySync)
	b.Edge(e, x, "dep-X-lazy", inputgraph.PriorityLazy)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	eBundle := bundleContaining(plan, "E")
	require.NotNil(t, eBundle)
	// X keeps its own bundle (the lazy edge made it an async split point);
	// internalization marks E's copy of the import as statically guaranteed
	// rather than copying X's code into E.
	assert.NotContains(t, eBundle.Assets, "X")
	assert.Contains(t, eBundle.InternalizedAssetIDs, "X")

	xBundle := bundleContaining(plan, "X")
	require.NotNil(t, xBundle)
	assert.NotSame(t, eBundle, xBundle)
}

// TestPlan_Determinism pins property 7: running Plan twice on identical
// input yields structurally identical plans.
func TestPlan_Determinism(t *testing.T) {
	build := func() inputgraph.Graph {
		b := fixture.New()
		e := b.Asset("E", "js", 1000)
		a := b.Asset("A", "js", 2000)
		b.Entry(e, "entry-E")
		b.Edge(e, a, "dep-A", inputgraph.PrioritySync)
		return b.Graph()
	}

	plan1, err := Plan(build(), defaultConfig())
	require.NoError(t, err)
	plan2, err := Plan(build(), defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, bundleCount(plan1), bundleCount(plan2))
	assert.Equal(t, len(plan1.EntryBundles), len(plan2.EntryBundles))
	assert.Equal(t, len(plan1.BundleGroupBundleIDs), len(plan2.BundleGroupBundleIDs))
}

// TestPlan_InvariantSizeConsistency pins property 2.
func TestPlan_InvariantSizeConsistency(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "js", 1234)
	a := b.Asset("A", "js", 4321)
	b.Entry(e, "entry-E")
	b.Edge(e, a, "dep-A", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	for _, id := range plan.BundleGraph.Nodes() {
		bundle, ok := plan.BundleGraph.GetNode(id)
		require.True(t, ok)
		var sum int64
		for _, asset := range bundle.Assets {
			sum += asset.Size
		}
		assert.Equal(t, sum, bundle.Size)
	}
}

// TestPlan_InvariantIsolatedNeverShared pins property 5.
func TestPlan_InvariantIsolatedNeverShared(t *testing.T) {
	b := fixture.New()
	e := b.Asset("E", "js", 1000)
	w := b.Asset("W", "js", 2000, fixture.WithIsolatedEnv(), fixture.WithBehavior(inputgraph.BehaviorIsolated))
	b.Entry(e, "entry-E")
	b.Edge(e, w, "dep-W", inputgraph.PrioritySync)

	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)

	wBundle := bundleContaining(plan, "W")
	require.NotNil(t, wBundle)
	assert.Len(t, wBundle.Assets, 1)
}

func TestPlan_EmptyGraphProducesEmptyPlan(t *testing.T) {
	b := fixture.New()
	plan, err := Plan(b.Graph(), defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, bundleCount(plan))
	assert.Empty(t, plan.EntryBundles)
}
