package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, code string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(code), 0644)
	require.NoError(t, err)
}

func TestDiscover_SimpleResource(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "storage.go", `package infra

import "github.com/stagewire/stagewire-aws-go/resources/s3"

var ArtifactBucket = s3.Bucket{
	BucketName: "artifacts",
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	require.Len(t, result.Resources, 1)
	res := result.Resources["ArtifactBucket"]
	assert.Equal(t, "ArtifactBucket", res.Name)
	assert.Equal(t, "s3.Bucket", res.Type)
	assert.Equal(t, "infra", res.Package)
	assert.Empty(t, res.Dependencies)
}

func TestDiscover_DirectReferenceDependency(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "network.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/resources/ec2"
	"github.com/stagewire/stagewire-aws-go/resources/elasticloadbalancingv2"
)

var VPC = ec2.VPC{
	CidrBlock: "10.0.0.0/16",
}

var OneboxTargetGroup = elasticloadbalancingv2.TargetGroup{
	Protocol: "HTTP",
	VpcId:    VPC,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	tg := result.Resources["OneboxTargetGroup"]
	assert.Contains(t, tg.Dependencies, "VPC")
	assert.Empty(t, result.Errors)
}

func TestDiscover_AttrRefUsage(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "compute.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

var TaskRole = iam.Role{
	RoleName: "task-role",
}

var WebApiTaskDefinition = ecs.TaskDefinition{
	TaskRoleArn: TaskRole.Arn,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	td := result.Resources["WebApiTaskDefinition"]
	assert.Contains(t, td.Dependencies, "TaskRole")
	require.Len(t, td.AttrRefUsages, 1)
	assert.Equal(t, "TaskRole", td.AttrRefUsages[0].ResourceName)
	assert.Equal(t, "Arn", td.AttrRefUsages[0].Attribute)
	assert.Equal(t, "TaskRoleArn", td.AttrRefUsages[0].FieldPath)
}

func TestDiscover_NestedFieldPath(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "compute.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

var TaskRole = iam.Role{
	RoleName: "task-role",
}

var WebApiService = ecs.Service{
	DeploymentConfiguration: &ecs.Service_DeploymentConfiguration{
		MaximumPercent: 200,
	},
	Role: TaskRole.Arn,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	svc := result.Resources["WebApiService"]
	require.Len(t, svc.AttrRefUsages, 1)
	assert.Equal(t, "Role", svc.AttrRefUsages[0].FieldPath)

	// Property types with underscores never become resources.
	assert.NotContains(t, result.Resources, "Service_DeploymentConfiguration")
}

func TestDiscover_ParameterAndOutput(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "stack.go", `package infra

import (
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/ec2"
)

var Environment = Parameter{
	Type:    "String",
	Default: "prod",
}

var VPC = ec2.VPC{
	CidrBlock: "10.0.0.0/16",
}

var VpcId = Output{
	Description: "VPC identifier",
	Value:       VPC,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	assert.Contains(t, result.Parameters, "Environment")
	assert.Contains(t, result.Outputs, "VpcId")
	assert.Len(t, result.Resources, 1)
}

func TestDiscover_UndefinedReference(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "compute.go", `package infra

import "github.com/stagewire/stagewire-aws-go/resources/ecs"

var WebApiService = ecs.Service{
	Role: UndefinedRole.Arn,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "UndefinedRole")
}

func TestDiscover_LocalVarIsNotUndefined(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "policy.go", `package infra

import (
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

var AssumePolicy = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		PolicyStatement{Effect: "Allow", Action: "sts:AssumeRole"},
	},
}

var TaskRole = iam.Role{
	AssumeRolePolicyDocument: AssumePolicy,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	// AssumePolicy is a plain package var, not a resource; referencing it is
	// a dependency on a local var, not an undefined resource.
	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Resources, "TaskRole")
}

func TestDiscover_ConstantExpressionNames(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "scaling.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	"github.com/stagewire/stagewire-aws-go/resources/applicationautoscaling"
)

var OneboxCPUScalingPolicy = applicationautoscaling.ScalingPolicy{
	PolicyName: deploy.OneboxServiceName + "-cpu",
	PolicyType: "TargetTrackingScaling",
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	// Constants from an imported package are not resource references.
	res := result.Resources["OneboxCPUScalingPolicy"]
	assert.Empty(t, res.Dependencies)
	assert.Empty(t, result.Errors)
}

func TestResolveAttrRefs_ThroughSharedPropertyVar(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "proxy.go", `package infra

import "github.com/stagewire/stagewire-aws-go/resources/elasticloadbalancingv2"

var LB = elasticloadbalancingv2.LoadBalancer{
	Name: "web-api",
}

var ForwardTarget = elasticloadbalancingv2.Listener_TargetGroupTuple{
	TargetGroupArn: LB.LoadBalancerArn,
	Weight:         1,
}

var HttpListener = elasticloadbalancingv2.Listener{
	Port:           80,
	DefaultActions: ForwardTarget,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	usages := result.ResolveAttrRefs("HttpListener")
	require.Len(t, usages, 1)
	assert.Equal(t, "LB", usages[0].ResourceName)
	// The path through the referenced var is prefixed with the field the
	// var was assigned to.
	assert.Equal(t, "DefaultActions.TargetGroupArn", usages[0].FieldPath)
}

func TestResolveAttrRefs_StopsAtReferencedResources(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "compute.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

var TaskExecutionRole = iam.Role{
	RoleName: "task-execution-role",
}

var WebApiTaskDefinition = ecs.TaskDefinition{
	ExecutionRoleArn: TaskExecutionRole.Arn,
}

var FleetService = ecs.Service{
	ServiceName:    "web-api-fleet",
	TaskDefinition: WebApiTaskDefinition,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	// The task definition serializes as {"Ref": ...} on the service; its own
	// attribute references stay on the task definition's properties.
	assert.Empty(t, result.ResolveAttrRefs("FleetService"))

	usages := result.ResolveAttrRefs("WebApiTaskDefinition")
	require.Len(t, usages, 1)
	assert.Equal(t, "ExecutionRoleArn", usages[0].FieldPath)
}

func TestResolveAttrRefs_PropertyVarSharedByTwoFields(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "monitoring.go", `package infra

import (
	"github.com/stagewire/stagewire-aws-go/resources/cloudwatch"
	"github.com/stagewire/stagewire-aws-go/resources/elasticloadbalancingv2"
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
)

var OneboxTargetGroup = elasticloadbalancingv2.TargetGroup{
	Protocol: "HTTP",
}

var TargetGroupDimension = cloudwatch.Alarm_Dimension{
	Name:  "TargetGroup",
	Value: OneboxTargetGroup.TargetGroupFullName,
}

var MonitoredService = ecs.Service{
	DeploymentConfiguration: TargetGroupDimension,
	NetworkConfiguration:    TargetGroupDimension,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	// One property var referenced from two fields contributes its attribute
	// reference under both paths.
	usages := result.ResolveAttrRefs("MonitoredService")
	paths := make([]string, 0, len(usages))
	for _, u := range usages {
		paths = append(paths, u.FieldPath)
	}
	assert.ElementsMatch(t, []string{
		"DeploymentConfiguration.Value",
		"NetworkConfiguration.Value",
	}, paths)
}

func TestDiscover_SkipsTestFiles(t *testing.T) {
	dir := t.TempDir()

	writeTestFile(t, dir, "storage.go", `package infra

import "github.com/stagewire/stagewire-aws-go/resources/s3"

var ArtifactBucket = s3.Bucket{BucketName: "artifacts"}
`)
	writeTestFile(t, dir, "storage_test.go", `package infra

import "github.com/stagewire/stagewire-aws-go/resources/s3"

var TestOnlyBucket = s3.Bucket{BucketName: "test-only"}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	assert.Contains(t, result.Resources, "ArtifactBucket")
	assert.NotContains(t, result.Resources, "TestOnlyBucket")
}
