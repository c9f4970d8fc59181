// dump_typechart writes the built-in type chart as YAML so it can be edited
// and loaded back through the [battle] type_chart config key.
// Usage: go run scripts/dump_typechart.go <output.yaml>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"gopkg.in/yaml.v3"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/dump_typechart.go <output.yaml>\n")
		return 1
	}
	outPath := filepath.Clean(os.Args[1])
	if strings.Contains(outPath, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}

	b, err := yaml.Marshal(battle.DefaultTypeChart())
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
			return 1
		}
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil { //nolint:gosec // chart is meant to be readable
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
		return 1
	}

	// Round-trip through the loader so a broken dump fails here, not at startup.
	if _, err := battle.LoadTypeChart(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return 1
	}
	fmt.Println("wrote", outPath)
	return 0
}
