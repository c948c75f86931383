// Command planctl runs the ideal-bundle planner against a fixture asset
// graph and prints a human-readable summary. It is the ambient CLI shell
// around the planning core described in SPEC_FULL.md; it performs no
// bundle-writing of its own (see SPEC_FULL.md §1 Non-goals).
package main

import (
	"os"

	"github.com/katalvlaran/bundleplan/cmd/planctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
