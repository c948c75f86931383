// Package fixture provides a small functional-options graph builder for
// tests and the planctl CLI's demo mode, grounded on the teacher library's
// builder package (builder/config.go's BuilderOption pattern): a central
// constructor applies a sequence of options left-to-right, each mutating a
// single piece of state in place.
//
// The upstream asset-graph builder itself (transformers, resolvers,
// dependency discovery) is out of scope for this repository; GraphBuilder
// is only a convenient way to assemble inputgraph.MemGraph fixtures that
// exercise the planner.
package fixture

import "github.com/katalvlaran/bundleplan/inputgraph"

// GraphBuilder accumulates assets and edges into a MemGraph.
type GraphBuilder struct {
	g      *inputgraph.MemGraph
	assets map[string]*inputgraph.Asset
}

// New returns an empty GraphBuilder.
func New() *GraphBuilder {
	return &GraphBuilder{
		g:      inputgraph.NewMemGraph(),
		assets: make(map[string]*inputgraph.Asset),
	}
}

// AssetOption configures an Asset at creation time.
type AssetOption func(*inputgraph.Asset)

// WithContext overrides the asset's Env.Context (default "browser").
func WithContext(ctx string) AssetOption {
	return func(a *inputgraph.Asset) { a.Env.Context = ctx }
}

// WithIsolatedEnv marks the asset's environment as isolated.
func WithIsolatedEnv() AssetOption {
	return func(a *inputgraph.Asset) { a.Env.IsIsolated = true }
}

// WithBehavior sets the asset's bundleBehavior.
func WithBehavior(b inputgraph.BundleBehavior) AssetOption {
	return func(a *inputgraph.Asset) { a.BundleBehavior = b }
}

// WithFilePath sets the asset's FilePath (cosmetic; unused by the planner).
func WithFilePath(path string) AssetOption {
	return func(a *inputgraph.Asset) { a.FilePath = path }
}

// Asset creates and registers an Asset of the given type and size (bytes).
// Env.Context defaults to "browser"; apply options to override.
func (b *GraphBuilder) Asset(id, typ string, size int64, opts ...AssetOption) *inputgraph.Asset {
	a := &inputgraph.Asset{
		ID:   id,
		Type: typ,
		Size: size,
		Env:  inputgraph.Env{Context: "browser"},
	}
	for _, opt := range opts {
		opt(a)
	}
	b.assets[id] = a
	b.g.AddAsset(a)
	return a
}

// DepOption configures a Dependency at creation time.
type DepOption func(*inputgraph.Dependency)

// WithTarget sets the dependency's output target name.
func WithTarget(target string) DepOption {
	return func(d *inputgraph.Dependency) { d.Target = target }
}

// WithNeedsStableName marks the dependency as requiring a stable bundle name.
func WithNeedsStableName() DepOption {
	return func(d *inputgraph.Dependency) { d.NeedsStableName = true }
}

// WithDepBehavior overrides the bundleBehavior carried by the dependency
// edge itself (distinct from the target asset's own bundleBehavior).
func WithDepBehavior(behavior inputgraph.BundleBehavior) DepOption {
	return func(d *inputgraph.Dependency) { d.BundleBehavior = &behavior }
}

// Entry registers a top-level entry dependency targeting asset.
func (b *GraphBuilder) Entry(asset *inputgraph.Asset, depID string, opts ...DepOption) {
	dep := &inputgraph.Dependency{ID: depID, IsEntry: true, Priority: inputgraph.PrioritySync, NeedsStableName: true}
	for _, opt := range opts {
		opt(dep)
	}
	b.g.AddEntry(dep, asset)
}

// Edge records a dependency edge parent --dep--> child at the given
// priority.
func (b *GraphBuilder) Edge(parent, child *inputgraph.Asset, depID string, priority inputgraph.Priority, opts ...DepOption) {
	dep := &inputgraph.Dependency{ID: depID, Priority: priority}
	for _, opt := range opts {
		opt(dep)
	}
	b.g.AddEdge(parent, dep, child)
}

// Graph returns the assembled MemGraph.
func (b *GraphBuilder) Graph() *inputgraph.MemGraph {
	return b.g
}
