// Package discover provides AST-based discovery of CloudFormation resource
// declarations.
//
// It parses Go source files looking for package-level variable declarations
// of the form:
//
//	var WebApiCluster = ecs.Cluster{...}
//
// and extracts resource metadata including dependencies on other resources.
package discover

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	stagewire "github.com/stagewire/stagewire-aws-go"
)

// knownResourcePackages maps resource package names to CloudFormation
// service prefixes.
var knownResourcePackages = map[string]string{
	"applicationautoscaling": "AWS::ApplicationAutoScaling",
	"cloudwatch":             "AWS::CloudWatch",
	"codebuild":              "AWS::CodeBuild",
	"codepipeline":           "AWS::CodePipeline",
	"ec2":                    "AWS::EC2",
	"ecr":                    "AWS::ECR",
	"ecs":                    "AWS::ECS",
	"elasticloadbalancingv2": "AWS::ElasticLoadBalancingV2",
	"iam":                    "AWS::IAM",
	"logs":                   "AWS::Logs",
	"s3":                     "AWS::S3",
}

// Options configures the discovery process.
type Options struct {
	// Packages to scan (e.g., "./service/...")
	Packages []string
	// Verbose enables debug output
	Verbose bool
}

// Result contains all discovered declarations and any errors.
type Result struct {
	// Resources maps logical name to discovered resource
	Resources map[string]stagewire.DiscoveredResource
	// Parameters maps logical name to discovered parameter
	Parameters map[string]stagewire.DiscoveredParameter
	// Outputs maps logical name to discovered output
	Outputs map[string]stagewire.DiscoveredOutput
	// AllVars tracks all package-level var declarations (including
	// non-resources) to avoid false positives when checking dependencies
	AllVars map[string]bool
	// VarAttrRefs tracks AttrRefUsages for all variables, including property
	// types, keyed by variable name
	VarAttrRefs map[string]VarAttrRefInfo
	// Errors encountered during parsing
	Errors []error
}

// VarAttrRefInfo tracks AttrRef usages and variable references for a single
// variable.
type VarAttrRefInfo struct {
	AttrRefs []stagewire.AttrRefUsage
	// VarRefs maps field path to referenced variable name
	VarRefs map[string]string
}

// Discover scans Go packages for CloudFormation resource declarations.
func Discover(opts Options) (*Result, error) {
	result := &Result{
		Resources:   make(map[string]stagewire.DiscoveredResource),
		Parameters:  make(map[string]stagewire.DiscoveredParameter),
		Outputs:     make(map[string]stagewire.DiscoveredOutput),
		AllVars:     make(map[string]bool),
		VarAttrRefs: make(map[string]VarAttrRefInfo),
	}

	for _, pkg := range opts.Packages {
		if err := discoverPackage(pkg, result, opts); err != nil {
			return nil, fmt.Errorf("discovering %s: %w", pkg, err)
		}
	}

	// Validate dependencies. Only flag truly undefined references; vars that
	// are defined locally (property type blocks, policy documents) are fine.
	for name, res := range result.Resources {
		for _, dep := range res.Dependencies {
			if _, ok := result.Resources[dep]; ok {
				continue
			}
			if result.AllVars[dep] {
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf(
				"%s:%d: %s references undefined resource %q",
				res.File, res.Line, name, dep,
			))
		}
	}

	return result, nil
}

func discoverPackage(pattern string, result *Result, opts Options) error {
	pattern = strings.TrimSuffix(pattern, "/...")
	recursive := strings.HasSuffix(pattern, "...")
	if recursive {
		pattern = strings.TrimSuffix(pattern, "...")
	}

	absPath, err := filepath.Abs(pattern)
	if err != nil {
		return err
	}

	if recursive {
		return filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return discoverDir(path, result, opts)
			}
			return nil
		})
	}

	return discoverDir(absPath, result, opts)
}

func discoverDir(dir string, result *Result, opts Options) error {
	fset := token.NewFileSet()

	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		// Directory might not contain Go files
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no Go files") {
			return nil
		}
		return err
	}

	for _, pkg := range pkgs {
		for filename, file := range pkg.Files {
			discoverFile(fset, filename, file, result)
		}
	}

	return nil
}

func discoverFile(fset *token.FileSet, filename string, file *ast.File, result *Result) {
	// Build import map: alias -> package path
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		imports[name] = path
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok || len(valueSpec.Names) != 1 || len(valueSpec.Values) != 1 {
				continue
			}

			name := valueSpec.Names[0].Name
			value := valueSpec.Values[0]

			if name == "_" {
				continue
			}

			// Track ALL var declarations to avoid false positive undefined
			// references
			result.AllVars[name] = true

			compLit, ok := value.(*ast.CompositeLit)
			if !ok {
				continue
			}

			typeName, pkgName := extractTypeName(compLit.Type)
			if typeName == "" {
				continue
			}

			pos := fset.Position(valueSpec.Pos())

			if isIntrinsicPackage(pkgName, imports) || pkgName == "" {
				switch typeName {
				case "Parameter":
					result.Parameters[name] = stagewire.DiscoveredParameter{
						Name: name,
						File: filename,
						Line: pos.Line,
					}
					continue
				case "Output":
					_, attrRefs := extractDependencies(compLit, imports)
					result.Outputs[name] = stagewire.DiscoveredOutput{
						Name:          name,
						File:          filename,
						Line:          pos.Line,
						AttrRefUsages: attrRefs,
					}
					continue
				}
			}

			// Extract dependencies, AttrRef usages and var refs for ALL
			// composite literals, not just resource packages; property-type
			// vars carry refs that resolve through the resources using them.
			deps, attrRefs, varRefs := extractDependenciesWithVarRefs(compLit, imports)

			result.VarAttrRefs[name] = VarAttrRefInfo{
				AttrRefs: attrRefs,
				VarRefs:  varRefs,
			}

			if _, known := knownResourcePackages[pkgName]; !known {
				continue
			}

			// Skip property types (e.g., Service_DeploymentConfiguration);
			// the underscore marks nested types, not CloudFormation resources.
			if strings.Contains(typeName, "_") {
				continue
			}

			result.Resources[name] = stagewire.DiscoveredResource{
				Name:          name,
				Type:          fmt.Sprintf("%s.%s", pkgName, typeName),
				Package:       file.Name.Name,
				File:          filename,
				Line:          pos.Line,
				Dependencies:  deps,
				AttrRefUsages: attrRefs,
			}
		}
	}
}

// isIntrinsicPackage checks if the package is the intrinsics package.
func isIntrinsicPackage(pkgName string, imports map[string]string) bool {
	if pkgName == "" {
		// Dot-imported, check if intrinsics is dot-imported
		for alias, path := range imports {
			if alias == "." && strings.HasSuffix(path, "/intrinsics") {
				return true
			}
		}
		return false
	}
	if pkgName == "intrinsics" {
		return true
	}
	if path, ok := imports[pkgName]; ok {
		return strings.HasSuffix(path, "/intrinsics")
	}
	return false
}

// extractTypeName extracts the type name and package from a type expression.
// For ecs.Cluster, returns ("Cluster", "ecs").
func extractTypeName(expr ast.Expr) (typeName, pkgName string) {
	switch t := expr.(type) {
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return t.Sel.Name, ident.Name
		}
	case *ast.Ident:
		return t.Name, ""
	}
	return "", ""
}

// extractDependencies finds references to other resources in composite
// literal fields. It looks for patterns like:
//   - OtherResource (identifier reference)
//   - OtherResource.Arn (selector for AttrRef)
func extractDependencies(lit *ast.CompositeLit, imports map[string]string) ([]string, []stagewire.AttrRefUsage) {
	deps, attrRefs, _ := extractDependenciesWithVarRefs(lit, imports)
	return deps, attrRefs
}

// extractDependenciesWithVarRefs is like extractDependencies but also returns
// variable references with their field paths, for recursive AttrRef resolution.
func extractDependenciesWithVarRefs(lit *ast.CompositeLit, imports map[string]string) ([]string, []stagewire.AttrRefUsage, map[string]string) {
	var deps []string
	var attrRefs []stagewire.AttrRefUsage
	varRefs := make(map[string]string) // field path -> var name
	seen := make(map[string]bool)

	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}

		fieldName := ""
		if ident, ok := kv.Key.(*ast.Ident); ok {
			fieldName = ident.Name
		}

		findDepsWithVarRefs(kv.Value, &deps, &attrRefs, varRefs, seen, imports, fieldName)
	}

	return deps, attrRefs, varRefs
}

func findDepsWithVarRefs(expr ast.Expr, deps *[]string, attrRefs *[]stagewire.AttrRefUsage, varRefs map[string]string, seen map[string]bool, imports map[string]string, fieldPath string) {
	switch v := expr.(type) {
	case *ast.Ident:
		name := v.Name
		if _, isImport := imports[name]; isImport {
			return
		}
		if isCommonIdent(name) {
			return
		}
		// Heuristic: starts with uppercase = likely a resource/var reference
		if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
			if !seen[name] {
				*deps = append(*deps, name)
				seen[name] = true
			}
			if varRefs != nil && fieldPath != "" {
				varRefs[fieldPath] = name
			}
		}

	case *ast.SelectorExpr:
		// Could be Resource.Attr or pkg.Const
		if ident, ok := v.X.(*ast.Ident); ok {
			name := ident.Name
			if _, isImport := imports[name]; isImport {
				return
			}
			// This is likely Resource.Attribute (e.g., TaskRole.Arn)
			if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
				if !seen[name] {
					*deps = append(*deps, name)
					seen[name] = true
				}
				*attrRefs = append(*attrRefs, stagewire.AttrRefUsage{
					ResourceName: name,
					Attribute:    v.Sel.Name,
					FieldPath:    fieldPath,
				})
			}
		}

	case *ast.CompositeLit:
		for _, elt := range v.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				nestedPath := fieldPath
				if ident, ok := kv.Key.(*ast.Ident); ok {
					if fieldPath != "" {
						nestedPath = fieldPath + "." + ident.Name
					} else {
						nestedPath = ident.Name
					}
				}
				findDepsWithVarRefs(kv.Value, deps, attrRefs, varRefs, seen, imports, nestedPath)
			} else {
				findDepsWithVarRefs(elt, deps, attrRefs, varRefs, seen, imports, fieldPath)
			}
		}

	case *ast.UnaryExpr:
		// Handle &Type{...}
		findDepsWithVarRefs(v.X, deps, attrRefs, varRefs, seen, imports, fieldPath)

	case *ast.CallExpr:
		for _, arg := range v.Args {
			findDepsWithVarRefs(arg, deps, attrRefs, varRefs, seen, imports, fieldPath)
		}

	case *ast.BinaryExpr:
		// Handle string concatenation like deploy.AppName + "-cpu"
		findDepsWithVarRefs(v.X, deps, attrRefs, varRefs, seen, imports, fieldPath)
		findDepsWithVarRefs(v.Y, deps, attrRefs, varRefs, seen, imports, fieldPath)

	case *ast.SliceExpr:
		findDepsWithVarRefs(v.X, deps, attrRefs, varRefs, seen, imports, fieldPath)

	case *ast.IndexExpr:
		findDepsWithVarRefs(v.X, deps, attrRefs, varRefs, seen, imports, fieldPath)
		findDepsWithVarRefs(v.Index, deps, attrRefs, varRefs, seen, imports, fieldPath)
	}
}

// ResolveAttrRefs recursively collects all AttrRefUsages for a variable by
// following its variable references and prefixing paths appropriately.
// References to other resources are not followed: those fields serialize as a
// Ref, and the referenced resource's attribute references belong to its own
// properties.
func (r *Result) ResolveAttrRefs(varName string) []stagewire.AttrRefUsage {
	stack := make(map[string]bool)
	return r.resolveAttrRefsRecursive(varName, "", stack)
}

// stack holds the vars on the current recursion path; a property var shared by
// several fields contributes its refs to every path, while cycles terminate.
func (r *Result) resolveAttrRefsRecursive(varName, pathPrefix string, stack map[string]bool) []stagewire.AttrRefUsage {
	if stack[varName] {
		return nil
	}
	stack[varName] = true
	defer delete(stack, varName)

	info, ok := r.VarAttrRefs[varName]
	if !ok {
		return nil
	}

	var result []stagewire.AttrRefUsage

	for _, ref := range info.AttrRefs {
		fullPath := ref.FieldPath
		if pathPrefix != "" {
			fullPath = pathPrefix + "." + ref.FieldPath
		}
		result = append(result, stagewire.AttrRefUsage{
			ResourceName: ref.ResourceName,
			Attribute:    ref.Attribute,
			FieldPath:    fullPath,
		})
	}

	for fieldPath, refVarName := range info.VarRefs {
		if _, isResource := r.Resources[refVarName]; isResource {
			continue
		}
		fullPath := fieldPath
		if pathPrefix != "" {
			fullPath = pathPrefix + "." + fieldPath
		}
		nested := r.resolveAttrRefsRecursive(refVarName, fullPath, stack)
		result = append(result, nested...)
	}

	return result
}

// isCommonIdent returns true for identifiers that are likely not resource
// names.
func isCommonIdent(name string) bool {
	common := map[string]bool{
		// Go built-ins
		"true": true, "false": true, "nil": true,
		"string": true, "int": true, "bool": true, "float64": true,
		"any": true, "error": true,

		// Intrinsic function types (from intrinsics package)
		"Ref": true, "Sub": true, "SubWithMap": true, "Join": true,
		"GetAtt": true, "Select": true, "GetAZs": true,
		"ImportValue": true, "Json": true, "Tag": true,
		"Parameter": true, "Output": true, "Param": true,
		"IntPtr": true, "Float64Ptr": true,

		// Policy helpers (from intrinsics package)
		"PolicyDocument": true, "PolicyStatement": true,
		"NewPolicyDocument": true, "ServicePrincipal": true,
		"AWSPrincipal": true, "AllPrincipal": true,
		"List": true, "Any": true,

		// Pseudo-parameter constants (from intrinsics package)
		"AWS_ACCOUNT_ID": true, "AWS_NOTIFICATION_ARNS": true,
		"AWS_NO_VALUE": true, "AWS_PARTITION": true,
		"AWS_REGION": true, "AWS_STACK_ID": true,
		"AWS_STACK_NAME": true, "AWS_URL_SUFFIX": true,
	}
	return common[name]
}
