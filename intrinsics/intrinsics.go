// Package intrinsics provides CloudFormation intrinsic functions.
//
// Core intrinsic functions:
//
//	Ref{"OneboxTargetGroup"} → {"Ref": "OneboxTargetGroup"}
//	Sub{"${AWS::Region}-artifacts"} → {"Fn::Sub": "${AWS::Region}-artifacts"}
//	Join{",", []any{"a", "b"}} → {"Fn::Join": [",", ["a", "b"]]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, etc.
package intrinsics

import (
	"encoding/json"
)

// Ref represents a CloudFormation Ref intrinsic function.
//
// Example:
//
//	Ref{"WebApiCluster"} → {"Ref": "WebApiCluster"}
type Ref struct {
	Name string
}

// MarshalJSON serializes Ref to CloudFormation syntax.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.Name})
}

// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
// Prefer resource AttrRef fields (e.g., TaskRole.Arn) where the attribute is
// declared; GetAtt is for positions the field model cannot reach, such as
// values nested inside []any.
//
// Example:
//
//	GetAtt{"WebApiLoadBalancer", "DNSName"} → {"Fn::GetAtt": ["WebApiLoadBalancer", "DNSName"]}
type GetAtt struct {
	Resource  string
	Attribute string
}

// MarshalJSON serializes GetAtt to CloudFormation syntax.
func (g GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {g.Resource, g.Attribute},
	})
}

// Sub represents a CloudFormation Fn::Sub intrinsic function.
//
// Example:
//
//	Sub{"web-api-${Environment}"} → {"Fn::Sub": "web-api-${Environment}"}
type Sub struct {
	String string
}

// MarshalJSON serializes Sub to CloudFormation syntax.
func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// SubWithMap is Fn::Sub with a variable map.
//
// Example:
//
//	SubWithMap{"${Stage}-alarm", map[string]any{"Stage": "onebox"}}
type SubWithMap struct {
	String    string
	Variables map[string]any
}

// MarshalJSON serializes SubWithMap to CloudFormation syntax.
func (s SubWithMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Sub": {s.String, s.Variables},
	})
}

// Join represents a CloudFormation Fn::Join intrinsic function.
//
// Example:
//
//	Join{"/", []any{"ecs", "web-api"}} → {"Fn::Join": ["/", ["ecs", "web-api"]]}
type Join struct {
	Delimiter string
	Values    []any
}

// MarshalJSON serializes Join to CloudFormation syntax.
func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	})
}

// Select represents a CloudFormation Fn::Select intrinsic function.
//
// Example:
//
//	Select{0, GetAZs{}} → {"Fn::Select": [0, {"Fn::GetAZs": ""}]}
type Select struct {
	Index int
	List  any
}

// MarshalJSON serializes Select to CloudFormation syntax.
func (s Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Select": {s.Index, s.List},
	})
}

// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
// An empty Region means the region of the current stack.
type GetAZs struct {
	Region string
}

// MarshalJSON serializes GetAZs to CloudFormation syntax.
func (g GetAZs) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::GetAZs": g.Region})
}

// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
type ImportValue struct {
	Name any
}

// MarshalJSON serializes ImportValue to CloudFormation syntax.
func (i ImportValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"Fn::ImportValue": i.Name})
}

// Tag represents a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// Output represents a CloudFormation stack output.
//
// Example:
//
//	var WebApiEndpoint = Output{
//	    Description: "Public DNS name of the load balancer",
//	    Value:       WebApiLoadBalancer.DNSName,
//	}
type Output struct {
	Description string
	Value       any
	ExportName  any
}

// Param creates a Ref for a CloudFormation parameter by name.
func Param(name string) Ref {
	return Ref{Name: name}
}

// Parameter defines a CloudFormation template parameter with full metadata.
// When used as a value in resource properties, it serializes to {"Ref": "ParameterName"}.
//
// Example:
//
//	var Environment = Parameter{
//	    Type:          "String",
//	    Description:   "Deployment environment",
//	    Default:       "prod",
//	    AllowedValues: []any{"sandbox", "prod"},
//	}
//
//	var WebApiCluster = ecs.Cluster{
//	    ClusterName: Sub{"web-api-${Environment}"},
//	}
type Parameter struct {
	// Type is the CloudFormation parameter type (String, Number, List<Number>, etc.)
	Type string
	// Description is optional documentation for the parameter
	Description string
	// Default is the default value if none is provided
	Default any
	// AllowedValues restricts the parameter to specific values
	AllowedValues []any
	// AllowedPattern is a regex pattern for String type validation
	AllowedPattern string
	// ConstraintDescription explains validation failures
	ConstraintDescription string
	// MinLength is minimum string length (for String type)
	MinLength *int
	// MaxLength is maximum string length (for String type)
	MaxLength *int
	// MinValue is minimum numeric value (for Number type)
	MinValue *float64
	// MaxValue is maximum numeric value (for Number type)
	MaxValue *float64
	// NoEcho masks the parameter value in console/logs
	NoEcho bool

	// name is set during discovery to enable proper Ref serialization
	name string
}

// SetName sets the parameter name for Ref serialization.
// This is called by the template builder after discovery.
func (p *Parameter) SetName(name string) {
	p.name = name
}

// Name returns the parameter name.
func (p Parameter) Name() string {
	return p.name
}

// MarshalJSON serializes Parameter as a CloudFormation Ref when used as a value.
func (p Parameter) MarshalJSON() ([]byte, error) {
	if p.name == "" {
		// Fallback: serialize as empty ref (should not happen in normal use)
		return json.Marshal(map[string]string{"Ref": ""})
	}
	return json.Marshal(map[string]string{"Ref": p.name})
}

// ToDefinition returns the parameter as a map suitable for the Parameters section.
func (p Parameter) ToDefinition() map[string]any {
	def := map[string]any{
		"Type": p.Type,
	}
	if p.Description != "" {
		def["Description"] = p.Description
	}
	if p.Default != nil {
		def["Default"] = p.Default
	}
	if len(p.AllowedValues) > 0 {
		def["AllowedValues"] = p.AllowedValues
	}
	if p.AllowedPattern != "" {
		def["AllowedPattern"] = p.AllowedPattern
	}
	if p.ConstraintDescription != "" {
		def["ConstraintDescription"] = p.ConstraintDescription
	}
	if p.MinLength != nil {
		def["MinLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		def["MaxLength"] = *p.MaxLength
	}
	if p.MinValue != nil {
		def["MinValue"] = *p.MinValue
	}
	if p.MaxValue != nil {
		def["MaxValue"] = *p.MaxValue
	}
	if p.NoEcho {
		def["NoEcho"] = true
	}
	return def
}

// Helper functions for creating pointers to primitive types.
// These are used for optional parameter fields.

// IntPtr returns a pointer to the given int value.
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to the given float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}
