// Package lint provides lint rules for stagewire-aws declaration code and
// for synthesized templates.
//
// AST rules catch source-level problems (hardcoded pseudo-parameters, raw
// intrinsic maps, duplicate declarations). Template rules check the rollout
// policy of the synthesized stack, where constant expressions have already
// been evaluated.
package lint

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Severity indicates how serious a lint issue is.
type Severity string

// Severity levels.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single lint finding.
type Issue struct {
	Rule       string
	Message    string
	Suggestion string
	File       string
	Line       int
	Column     int
	Severity   Severity
}

// Rule checks a parsed Go file.
type Rule interface {
	ID() string
	Description() string
	Check(file *ast.File, fset *token.FileSet) []Issue
}

// TemplateRule checks a synthesized template.
type TemplateRule interface {
	ID() string
	Description() string
	CheckTemplate(t *stagewire.Template) []Issue
}

// Result contains the outcome of linting.
type Result struct {
	Success bool
	Issues  []Issue
}

// Options configures the linter.
type Options struct {
	// Rules to enable. If empty, all rules are enabled.
	EnabledRules []string
}

// LintFile lints a single Go file.
func LintFile(path string, opts Options) (Result, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return Result{}, err
	}

	rules := getRules(opts)
	var issues []Issue

	for _, rule := range rules {
		issues = append(issues, rule.Check(file, fset)...)
	}

	return Result{
		Success: len(issues) == 0,
		Issues:  issues,
	}, nil
}

// LintPackage lints all Go files in a package directory.
func LintPackage(pkgPath string, opts Options) (Result, error) {
	if strings.HasSuffix(pkgPath, "...") {
		return lintRecursive(strings.TrimSuffix(strings.TrimSuffix(pkgPath, "..."), "/"), opts)
	}

	fset := token.NewFileSet()

	pkgs, err := parser.ParseDir(fset, pkgPath, nil, parser.ParseComments)
	if err != nil {
		return Result{}, err
	}

	rules := getRules(opts)
	var allIssues []Issue

	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			for _, rule := range rules {
				allIssues = append(allIssues, rule.Check(file, fset)...)
			}
		}
	}

	return Result{
		Success: len(allIssues) == 0,
		Issues:  allIssues,
	}, nil
}

// LintTemplate runs the template-level policy rules against a synthesized
// template.
func LintTemplate(t *stagewire.Template, opts Options) Result {
	var issues []Issue

	for _, rule := range getTemplateRules(opts) {
		issues = append(issues, rule.CheckTemplate(t)...)
	}

	return Result{
		Success: len(issues) == 0,
		Issues:  issues,
	}
}

// lintRecursive lints all Go packages recursively.
func lintRecursive(root string, opts Options) (Result, error) {
	var allIssues []Issue

	if root == "" {
		root = "."
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && info.Name() == "vendor" {
			return filepath.SkipDir
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
			return filepath.SkipDir
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), "_") {
			return filepath.SkipDir
		}

		if !info.IsDir() && strings.HasSuffix(path, ".go") {
			if strings.HasSuffix(path, "_test.go") {
				return nil
			}

			result, err := LintFile(path, opts)
			if err != nil {
				// Parse errors are not lint findings
				return nil
			}

			allIssues = append(allIssues, result.Issues...)
		}

		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return Result{
		Success: len(allIssues) == 0,
		Issues:  allIssues,
	}, nil
}

// getRules returns the AST rules to use based on options.
func getRules(opts Options) []Rule {
	all := AllRules()

	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var filtered []Rule
	for _, r := range all {
		if enabled[r.ID()] {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// getTemplateRules returns the template rules to use based on options.
func getTemplateRules(opts Options) []TemplateRule {
	all := AllTemplateRules()

	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var filtered []TemplateRule
	for _, r := range all {
		if enabled[r.ID()] {
			filtered = append(filtered, r)
		}
	}

	return filtered
}
