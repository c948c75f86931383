package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/bundleplan/inputgraph"
)

// fixtureDoc is the JSON shape `planctl plan` reads for its demo/ad-hoc
// input graph. It is this repository's own format: SPEC_FULL.md's §6
// external interface only specifies the Go-side inputgraph.Graph contract,
// not a wire format, since the real upstream asset-graph builder is out of
// scope (see SPEC_FULL.md, DOMAIN STACK "supplemented features").
type fixtureDoc struct {
	Assets []fixtureAsset `json:"assets"`
	Edges  []fixtureEdge  `json:"edges"`
}

type fixtureAsset struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Context  string `json:"context"`
	Isolated bool   `json:"isolated"`
	Behavior string `json:"behavior"` // "", "inline", "isolated"
}

type fixtureEdge struct {
	Parent          string `json:"parent"` // "" for an entry edge
	Child           string `json:"child"`
	DependencyID    string `json:"dependencyId"`
	Priority        string `json:"priority"` // "sync", "parallel", "lazy"
	Target          string `json:"target"`
	NeedsStableName bool   `json:"needsStableName"`
	IsEntry         bool   `json:"isEntry"`
}

func parseBehavior(s string) inputgraph.BundleBehavior {
	switch s {
	case "inline":
		return inputgraph.BehaviorInline
	case "isolated":
		return inputgraph.BehaviorIsolated
	default:
		return inputgraph.BehaviorNormal
	}
}

func parsePriority(s string) inputgraph.Priority {
	switch s {
	case "parallel":
		return inputgraph.PriorityParallel
	case "lazy":
		return inputgraph.PriorityLazy
	default:
		return inputgraph.PrioritySync
	}
}

// loadFixtureGraph decodes r as a fixtureDoc and builds an inputgraph.Graph.
func loadFixtureGraph(r io.Reader) (inputgraph.Graph, error) {
	var doc fixtureDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode fixture graph: %w", err)
	}

	g := inputgraph.NewMemGraph()
	assets := make(map[string]*inputgraph.Asset, len(doc.Assets))
	for _, fa := range doc.Assets {
		a := &inputgraph.Asset{
			ID:             fa.ID,
			Type:           fa.Type,
			Size:           fa.Size,
			Env:            inputgraph.Env{Context: fa.Context, IsIsolated: fa.Isolated},
			BundleBehavior: parseBehavior(fa.Behavior),
		}
		assets[a.ID] = a
		g.AddAsset(a)
	}

	for _, fe := range doc.Edges {
		child, ok := assets[fe.Child]
		if !ok {
			return nil, fmt.Errorf("edge %s: unknown child asset %q", fe.DependencyID, fe.Child)
		}
		dep := &inputgraph.Dependency{
			ID:              fe.DependencyID,
			Priority:        parsePriority(fe.Priority),
			IsEntry:         fe.IsEntry,
			Target:          fe.Target,
			NeedsStableName: fe.NeedsStableName,
		}

		if fe.Parent == "" {
			g.AddEntry(dep, child)
			continue
		}
		parent, ok := assets[fe.Parent]
		if !ok {
			return nil, fmt.Errorf("edge %s: unknown parent asset %q", fe.DependencyID, fe.Parent)
		}
		g.AddEdge(parent, dep, child)
	}

	return g, nil
}
