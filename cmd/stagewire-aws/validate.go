package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/internal/template"
	"github.com/stagewire/stagewire-aws-go/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [package]",
		Short: "Validate resource declarations without generating output",
		Long: `Validate checks that a stack package synthesizes cleanly: every
declaration resolves, the registry matches the source, and each resource
carries the properties its type requires.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(pkg, format string) error {
	result := stagewire.ValidateResult{Success: true}

	provider, err := stackFor(pkg)
	if err != nil {
		return err
	}

	d, err := discover.Discover(discover.Options{Packages: []string{pkg}})
	if err != nil {
		return err
	}
	result.Resources = len(d.Resources)

	for _, e := range d.Errors {
		result.Errors = append(result.Errors, e.Error())
	}
	for _, e := range validation.CheckRegistry(d, provider) {
		result.Errors = append(result.Errors, e.Error())
	}

	if len(result.Errors) == 0 {
		reg, err := registry.New(provider)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			tmpl, err := template.NewBuilder(d, reg).Build()
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
			} else {
				for _, e := range validation.CheckRequired(tmpl) {
					result.Errors = append(result.Errors, e.Error())
				}
			}
		}
	}

	result.Success = len(result.Errors) == 0

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		if result.Success {
			fmt.Printf("Validation passed: %d resources\n", result.Resources)
		} else {
			fmt.Printf("Validation failed: %d errors\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e)
			}
		}
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
