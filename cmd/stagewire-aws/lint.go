package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/deploy"
	"github.com/stagewire/stagewire-aws-go/internal/lint"
)

func newLintCmd() *cobra.Command {
	var format string
	var rules []string

	cmd := &cobra.Command{
		Use:   "lint [package]",
		Short: "Check declarations for style and rollout-policy issues",
		Long: `Lint checks declaration source for common mistakes, and, when the
target is a stack package, checks the synthesized template against the
rollout policy.

Source rules:
  SW001: Use pseudo-parameter constants instead of hardcoded strings
  SW002: Use intrinsic types instead of raw maps
  SW003: Resource names must be unique

Template rules:
  SW101: Listener forward weights must be exactly 1 and 99
  SW102: Scalable targets must have sane capacity bounds
  SW103: All ECS services must share one task definition
  SW104: Pipeline actions must run after their inputs, one ECS deploy at a time

Exits 2 when issues are found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0], format, rules)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringSliceVar(&rules, "rules", nil, "Rule IDs to enable (default: all)")

	return cmd
}

func runLint(pkg, format string, rules []string) error {
	opts := lint.Options{EnabledRules: rules}

	astResult, err := lint.LintPackage(pkg, opts)
	if err != nil {
		return err
	}
	issues := astResult.Issues

	// Stack packages also get template-level policy checks.
	if _, err := stackFor(pkg); err == nil {
		tmpl, err := synthesize(pkg, deploy.ProdStackName, "cmd/webapi")
		if err != nil {
			return err
		}
		issues = append(issues, lint.LintTemplate(tmpl, opts).Issues...)
	}

	result := stagewire.LintResult{Success: len(issues) == 0}
	for _, issue := range issues {
		result.Issues = append(result.Issues, stagewire.LintIssue{
			File:     issue.File,
			Line:     issue.Line,
			Column:   issue.Column,
			Severity: string(issue.Severity),
			Message:  issue.Message,
			Rule:     issue.Rule,
		})
	}

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		if result.Success {
			fmt.Println("No issues found")
		} else {
			for _, issue := range result.Issues {
				if issue.File != "" {
					fmt.Printf("%s:%d:%d: %s: %s [%s]\n", issue.File, issue.Line, issue.Column, issue.Severity, issue.Message, issue.Rule)
				} else {
					fmt.Printf("%s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)
				}
			}
			fmt.Printf("\n%d issues found\n", len(result.Issues))
		}
	}

	if !result.Success {
		os.Exit(2)
	}
	return nil
}
