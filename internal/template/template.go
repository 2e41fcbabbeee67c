// Package template builds CloudFormation templates from discovered
// declarations and their registered values.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/internal/serialize"
	"github.com/stagewire/stagewire-aws-go/intrinsics"
)

// Builder constructs a CloudFormation template for one stack.
type Builder struct {
	discovery   *discover.Result
	registry    *registry.Registry
	description string
}

// NewBuilder creates a template builder from discovery output and the stack's
// registry.
func NewBuilder(d *discover.Result, r *registry.Registry) *Builder {
	return &Builder{discovery: d, registry: r}
}

// SetDescription sets the template description.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*stagewire.Template, error) {
	order, err := b.topologicalSort()
	if err != nil {
		return nil, err
	}

	tmpl := &stagewire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]stagewire.ResourceDef),
	}

	opts := serialize.Options{Resolve: b.registry.Resolve}

	if len(b.discovery.Parameters) > 0 {
		tmpl.Parameters = make(map[string]stagewire.Parameter)
		for name := range b.discovery.Parameters {
			param, ok := b.registry.Parameter(name)
			if !ok {
				return nil, fmt.Errorf("parameter %s is declared but not registered", name)
			}
			tmpl.Parameters[name] = stagewire.Parameter{
				Type:          param.Type,
				Description:   param.Description,
				Default:       param.Default,
				AllowedValues: param.AllowedValues,
			}
		}
	}

	for _, name := range order {
		res := b.discovery.Resources[name]

		value, ok := b.registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("resource %s is declared at %s:%d but not registered", name, res.File, res.Line)
		}

		resourceType := cfResourceType(res.Type)
		if resourceType == "" {
			return nil, fmt.Errorf("unknown resource type: %s", res.Type)
		}

		props, err := serialize.Properties(value, opts)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}

		injectAttrRefs(props, b.discovery.ResolveAttrRefs(name))

		tmpl.Resources[name] = stagewire.ResourceDef{
			Type:       resourceType,
			Properties: props,
			DependsOn:  b.resourceDeps(res),
		}
	}

	if len(b.discovery.Outputs) > 0 {
		tmpl.Outputs = make(map[string]stagewire.Output)
		for name, out := range b.discovery.Outputs {
			decl, ok := b.registry.Output(name)
			if !ok {
				return nil, fmt.Errorf("output %s is declared at %s:%d but not registered", name, out.File, out.Line)
			}
			serialized, err := b.serializeOutput(decl, out, opts)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			tmpl.Outputs[name] = serialized
		}
	}

	return tmpl, nil
}

// resourceDeps returns the discovered resource-to-resource dependencies,
// sorted for determinism.
func (b *Builder) resourceDeps(res stagewire.DiscoveredResource) []string {
	var deps []string
	for _, dep := range res.Dependencies {
		if _, ok := b.discovery.Resources[dep]; ok {
			deps = append(deps, dep)
		}
	}
	sort.Strings(deps)
	return deps
}

// serializeOutput converts an output declaration to the template format.
func (b *Builder) serializeOutput(decl intrinsics.Output, out stagewire.DiscoveredOutput, opts serialize.Options) (stagewire.Output, error) {
	value, err := serialize.Value(decl.Value, opts)
	if err != nil {
		return stagewire.Output{}, err
	}

	result := stagewire.Output{
		Description: decl.Description,
		Value:       value,
	}

	// Fill in attribute references recorded against the output value.
	for _, usage := range out.AttrRefUsages {
		if usage.FieldPath != "Value" {
			continue
		}
		if result.Value == nil || isPlaceholderGetAtt(result.Value) {
			result.Value = getAttMap(usage.ResourceName, usage.Attribute)
		}
	}

	if decl.ExportName != nil {
		exportValue, err := serialize.Value(decl.ExportName, opts)
		if err != nil {
			return stagewire.Output{}, err
		}
		if name, ok := exportValue.(string); ok {
			result.Export = &struct {
				Name string `json:"Name" yaml:"Name"`
			}{Name: name}
		}
	}

	return result, nil
}

// injectAttrRefs fills discovered Resource.Attribute references into the
// serialized properties. An AttrRef field is zero at declaration time and
// serializes as a GetAtt placeholder; discovery knows which resource and
// attribute the source code named.
//
// Injection only touches paths that walk through maps. A reference nested in
// a slice cannot be addressed by field path; declarations use an explicit
// GetAtt there instead.
func injectAttrRefs(props map[string]any, usages []stagewire.AttrRefUsage) {
	for _, usage := range usages {
		if usage.FieldPath == "" {
			continue
		}

		segments := strings.Split(usage.FieldPath, ".")
		current := props
		walkable := true
		for _, seg := range segments[:len(segments)-1] {
			next, ok := current[seg].(map[string]any)
			if !ok || isIntrinsicMap(next) {
				walkable = false
				break
			}
			current = next
		}
		if !walkable {
			continue
		}

		last := segments[len(segments)-1]
		existing, present := current[last]
		if !present || isPlaceholderGetAtt(existing) {
			current[last] = getAttMap(usage.ResourceName, usage.Attribute)
		}
	}
}

// isIntrinsicMap reports whether a serialized value is an intrinsic such as
// {"Ref": ...} or {"Fn::GetAtt": ...}. Injection never descends into one.
func isIntrinsicMap(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for key := range m {
		if key == "Ref" || strings.HasPrefix(key, "Fn::") {
			return true
		}
	}
	return false
}

// isPlaceholderGetAtt reports whether a value is a GetAtt serialized from a
// zero AttrRef.
func isPlaceholderGetAtt(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	args, ok := m["Fn::GetAtt"].([]any)
	if !ok || len(args) != 2 {
		return false
	}
	r, _ := args[0].(string)
	a, _ := args[1].(string)
	return r == "" && a == ""
}

func getAttMap(resource, attribute string) map[string]any {
	return map[string]any{
		"Fn::GetAtt": []any{resource, attribute},
	}
}

// topologicalSort returns resources in dependency order.
func (b *Builder) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.discovery.Resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, res := range b.discovery.Resources {
		for _, dep := range res.Dependencies {
			if _, exists := b.discovery.Resources[dep]; exists {
				graph[dep] = append(graph[dep], name)
				inDegree[name]++
			}
		}
	}

	// Kahn's algorithm
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue) // Deterministic order

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.discovery.Resources) {
		return nil, b.detectCycle()
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func (b *Builder) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range b.discovery.Resources[node].Dependencies {
			if _, exists := b.discovery.Resources[dep]; !exists {
				continue
			}
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	names := make([]string, 0, len(b.discovery.Resources))
	for name := range b.discovery.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		msg := "circular dependency detected:\n"
		for i, name := range cycle {
			res := b.discovery.Resources[name]
			msg += fmt.Sprintf("  %s (%s:%d)", name, res.File, res.Line)
			if i < len(cycle)-1 {
				msg += "\n    -> "
			}
		}
		return errors.New(msg)
	}

	return errors.New("circular dependency detected")
}

// cfResourceType converts a Go type to a CloudFormation type.
// e.g., "ecs.Service" -> "AWS::ECS::Service"
func cfResourceType(goType string) string {
	parts := strings.SplitN(goType, ".", 2)
	if len(parts) != 2 {
		return ""
	}

	service, ok := cfServiceNames[parts[0]]
	if !ok {
		return ""
	}

	return "AWS::" + service + "::" + parts[1]
}

// cfServiceNames maps Go package names to CloudFormation service names.
var cfServiceNames = map[string]string{
	"applicationautoscaling": "ApplicationAutoScaling",
	"cloudwatch":             "CloudWatch",
	"codebuild":              "CodeBuild",
	"codepipeline":           "CodePipeline",
	"ec2":                    "EC2",
	"ecr":                    "ECR",
	"ecs":                    "ECS",
	"elasticloadbalancingv2": "ElasticLoadBalancingV2",
	"iam":                    "IAM",
	"logs":                   "Logs",
	"s3":                     "S3",
}

// ToJSON serializes the template to JSON.
func ToJSON(t *stagewire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *stagewire.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
