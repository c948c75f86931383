// Package render formats an IdealPlan as a human-readable terminal summary,
// grounded on ALT-F4-LLC/docket's internal/render table style: lipgloss for
// styling, go-humanize for byte counts.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"

	"github.com/katalvlaran/bundleplan/planner"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	sharedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// PlanSummary renders plan as a tree of bundles grouped by bundle-group id,
// followed by a totals line.
func PlanSummary(plan *planner.IdealPlan) string {
	if plan == nil || len(plan.BundleGraph.Nodes()) == 0 {
		return dimStyle.Render("no bundles produced")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("BUNDLE GROUPS"))
	b.WriteString("\n")

	var total int64
	for _, groupID := range plan.BundleGroupBundleIDs {
		group, ok := plan.BundleGraph.GetNode(groupID)
		if !ok {
			continue
		}
		total += group.Size
		fmt.Fprintf(&b, "  %s  %s\n", nameStyle.Render(bundleLabel(group)), dimStyle.Render(humanize.Bytes(uint64(group.Size))))

		siblings := plan.BundleGraph.NodesConnectedFrom(groupID)
		sort.Slice(siblings, func(i, j int) bool { return siblings[i] < siblings[j] })
		for _, sibID := range siblings {
			sib, ok := plan.BundleGraph.GetNode(sibID)
			if !ok {
				continue
			}
			label := bundleLabel(sib)
			if len(sib.SourceBundles) >= 2 {
				label = sharedStyle.Render(label) + dimStyle.Render(fmt.Sprintf(" (shared by %d)", len(sib.SourceBundles)))
			}
			fmt.Fprintf(&b, "    └─ %s  %s\n", label, dimStyle.Render(humanize.Bytes(uint64(sib.Size))))
		}
	}

	fmt.Fprintf(&b, "\n%s %s across %d bundles\n",
		headerStyle.Render("TOTAL"), humanize.Bytes(uint64(total)), len(plan.BundleGraph.Nodes()))

	return b.String()
}

func bundleLabel(bundle *planner.Bundle) string {
	if bundle.Target != "" {
		return bundle.Target
	}
	return fmt.Sprintf("<%s bundle, %d assets>", bundle.Type, len(bundle.Assets))
}
