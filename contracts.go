// Package stagewire_aws provides Go types for declaring the staged
// (onebox/fleet) ECS delivery infrastructure as CloudFormation resources.
//
// Infrastructure is declared as package-level variables using native Go
// syntax:
//
//	var OneboxTargetGroup = elasticloadbalancingv2.TargetGroup{
//	    Protocol: "HTTP",
//	    VpcId:    VPC,
//	}
//
// The stagewire-aws CLI discovers these declarations via AST parsing,
// resolves cross-resource references, and generates CloudFormation
// templates for the service and toolchain stacks.
package stagewire_aws

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types (ecs.Service, elasticloadbalancingv2.TargetGroup, etc.)
// implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::ECS::Service")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to a resource attribute.
// Resource types carry AttrRef fields for each supported attribute, so a
// declaration can reference an attribute with plain field access:
//
//	var TaskDefinition = ecs.TaskDefinition{
//	    ExecutionRoleArn: TaskExecutionRole.Arn,  // AttrRef
//	}
//
// When serialized, AttrRef becomes {"Fn::GetAtt": ["TaskExecutionRole", "Arn"]}.
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn", "DNSName")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
// Declared attribute fields are zero-valued; discovery records which resource
// and attribute each field access names, and the template builder fills the
// reference in.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// AttrRefUsage records a single Resource.Attribute field access found by
// discovery, along with the property path it was assigned to.
type AttrRefUsage struct {
	// ResourceName is the logical name of the referenced resource
	ResourceName string
	// Attribute is the attribute being read (e.g., "Arn")
	Attribute string
	// FieldPath is the dotted property path the reference was assigned to
	// (e.g., "ExecutionRoleArn")
	FieldPath string
}

// DiscoveredResource represents a resource declaration found by AST parsing.
type DiscoveredResource struct {
	// Name is the variable name (becomes the CloudFormation logical ID)
	Name string
	// Type is the Go type (e.g., "ecs.Service", "cloudwatch.Alarm")
	Type string
	// Package is the package containing the declaration
	Package string
	// File is the source file path
	File string
	// Line is the line number of the declaration
	Line int
	// Dependencies are logical names of referenced resources
	Dependencies []string
	// AttrRefUsages are attribute references made by this declaration
	AttrRefUsages []AttrRefUsage
}

// DiscoveredParameter represents a template parameter declaration.
type DiscoveredParameter struct {
	Name string
	File string
	Line int
}

// DiscoveredOutput represents a stack output declaration.
type DiscoveredOutput struct {
	Name string
	File string
	Line int
	// AttrRefUsages are attribute references made by the output value
	AttrRefUsages []AttrRefUsage
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type          string `json:"Type" yaml:"Type"`
	Description   string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any    `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []any  `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// BuildResult is the JSON output from `stagewire-aws build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `stagewire-aws lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}

// ValidateResult is the JSON output from `stagewire-aws validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `stagewire-aws list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	File string `json:"file"`
	Line int    `json:"line"`
}
