package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var format string
	var includeParams bool
	var clusterByType bool
	var output string

	cmd := &cobra.Command{
		Use:   "graph [package]",
		Short: "Generate a dependency graph of declared resources",
		Long: `Graph renders the resource dependency graph in Graphviz DOT or
Mermaid format. GetAtt references are drawn in blue.

Examples:
  stagewire-aws graph ./service | dot -Tsvg -o service.svg
  stagewire-aws graph ./toolchain -f mermaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], format, includeParams, clusterByType, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParams, "parameters", "p", false, "Include parameter references")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Group resources by AWS service")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGraph(pkg, format string, includeParams, clusterByType bool, output string) error {
	d, err := discover.Discover(discover.Options{Packages: []string{pkg}})
	if err != nil {
		return err
	}

	g := &graph.Generator{
		IncludeParameters: includeParams,
		Format:            graph.Format(format),
		ClusterByType:     clusterByType,
	}

	out, err := g.GenerateString(d.Resources, d.Parameters)
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Graph written to %s\n", output)
		return nil
	}

	fmt.Print(out)
	return nil
}
