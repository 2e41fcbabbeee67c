// Package validation cross-checks discovered declarations against the
// registry and the synthesized template against per-type required
// properties.
package validation

import (
	"fmt"
	"sort"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
)

// CheckRegistry verifies that the AST declarations and the registry maps
// agree: every discovered resource, parameter and output must be registered
// under the same name, and nothing registered may be missing from the
// source. A mismatch means a registry file was not updated with a
// declaration change.
func CheckRegistry(d *discover.Result, p registry.Provider) []error {
	var errs []error

	for _, name := range sortedKeys(d.Resources) {
		if _, ok := p.Declarations[name]; !ok {
			res := d.Resources[name]
			errs = append(errs, fmt.Errorf("resource %s (%s:%d) is declared but not registered", name, res.File, res.Line))
		}
	}
	for name := range p.Declarations {
		if _, ok := d.Resources[name]; !ok {
			errs = append(errs, fmt.Errorf("registry entry %s has no matching declaration", name))
		}
	}

	for _, name := range sortedKeys(d.Parameters) {
		if _, ok := p.Parameters[name]; !ok {
			param := d.Parameters[name]
			errs = append(errs, fmt.Errorf("parameter %s (%s:%d) is declared but not registered", name, param.File, param.Line))
		}
	}
	for name := range p.Parameters {
		if _, ok := d.Parameters[name]; !ok {
			errs = append(errs, fmt.Errorf("registered parameter %s has no matching declaration", name))
		}
	}

	for _, name := range sortedKeys(d.Outputs) {
		if _, ok := p.Outputs[name]; !ok {
			out := d.Outputs[name]
			errs = append(errs, fmt.Errorf("output %s (%s:%d) is declared but not registered", name, out.File, out.Line))
		}
	}
	for name := range p.Outputs {
		if _, ok := d.Outputs[name]; !ok {
			errs = append(errs, fmt.Errorf("registered output %s has no matching declaration", name))
		}
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return errs
}

// requiredProperties lists properties that a resource type cannot deploy
// without. Missing entries surface at synthesis time instead of as a
// CloudFormation rollback.
var requiredProperties = map[string][]string{
	"AWS::ApplicationAutoScaling::ScalableTarget": {"ResourceId", "ScalableDimension", "ServiceNamespace"},
	"AWS::CloudWatch::Alarm":                      {"MetricName", "Namespace", "ComparisonOperator", "EvaluationPeriods"},
	"AWS::CodeBuild::Project":                     {"ServiceRole", "Artifacts", "Environment", "Source"},
	"AWS::CodePipeline::Pipeline":                 {"RoleArn", "ArtifactStore", "Stages"},
	"AWS::EC2::Subnet":                            {"VpcId", "CidrBlock"},
	"AWS::EC2::VPC":                               {"CidrBlock"},
	"AWS::ECS::Service":                           {"Cluster", "TaskDefinition"},
	"AWS::ECS::TaskDefinition":                    {"ContainerDefinitions"},
	"AWS::ElasticLoadBalancingV2::Listener":       {"LoadBalancerArn", "DefaultActions"},
	"AWS::ElasticLoadBalancingV2::TargetGroup":    {"VpcId"},
	"AWS::IAM::Role":                              {"AssumeRolePolicyDocument"},
	"AWS::Logs::LogGroup":                         nil,
	"AWS::S3::Bucket":                             nil,
}

// CheckRequired verifies that every resource in the template carries the
// properties its type requires.
func CheckRequired(t *stagewire.Template) []error {
	var errs []error

	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res := t.Resources[name]
		for _, prop := range requiredProperties[res.Type] {
			if _, ok := res.Properties[prop]; !ok {
				errs = append(errs, fmt.Errorf("%s (%s) is missing required property %s", name, res.Type, prop))
			}
		}
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
