package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [package]",
		Short: "List discovered resource declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(pkg, format string) error {
	d, err := discover.Discover(discover.Options{Packages: []string{pkg}})
	if err != nil {
		return err
	}

	result := stagewire.ListResult{}
	for _, res := range d.Resources {
		result.Resources = append(result.Resources, stagewire.ListResource{
			Name: res.Name,
			Type: res.Type,
			File: res.File,
			Line: res.Line,
		})
	}
	sort.Slice(result.Resources, func(i, j int) bool {
		return result.Resources[i].Name < result.Resources[j].Name
	})

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Registered resources (%d):\n", len(result.Resources))
	for _, res := range result.Resources {
		fmt.Printf("  %-28s %-40s %s:%d\n", res.Name, res.Type, res.File, res.Line)
	}
	return nil
}
