package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/lint"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/internal/template"
	"github.com/stagewire/stagewire-aws-go/internal/validation"
)

// buildStack synthesizes the service stack the same way the CLI does.
func buildStack(t *testing.T) *stagewire.Template {
	t.Helper()

	d, err := discover.Discover(discover.Options{Packages: []string{"."}})
	require.NoError(t, err)
	require.Empty(t, d.Errors)

	provider := registry.Provider{
		Declarations: Declarations(),
		Parameters:   Parameters(),
		Outputs:      Outputs(),
	}
	require.Empty(t, validation.CheckRegistry(d, provider))

	reg, err := registry.New(provider)
	require.NoError(t, err)

	tmpl, err := template.NewBuilder(d, reg).Build()
	require.NoError(t, err)
	require.Empty(t, validation.CheckRequired(tmpl))

	return tmpl
}

func props(t *testing.T, tmpl *stagewire.Template, name string) map[string]any {
	t.Helper()
	res, ok := tmpl.Resources[name]
	require.True(t, ok, "resource %s not in template", name)
	return res.Properties
}

func TestStack_Synthesizes(t *testing.T) {
	tmpl := buildStack(t)

	assert.Len(t, tmpl.Resources, len(Declarations()))
	assert.Len(t, tmpl.Parameters, 2)
	assert.Len(t, tmpl.Outputs, 2)
}

func TestStack_CanaryTrafficSplit(t *testing.T) {
	tmpl := buildStack(t)

	listener := props(t, tmpl, "HttpListener")
	assert.EqualValues(t, 80, listener["Port"])
	assert.Equal(t, map[string]any{"Ref": "WebApiLoadBalancer"}, listener["LoadBalancerArn"])

	action := listener["DefaultActions"].([]any)[0].(map[string]any)
	assert.Equal(t, "forward", action["Type"])

	tuples := action["ForwardConfig"].(map[string]any)["TargetGroups"].([]any)
	require.Len(t, tuples, 2)

	weights := map[string]int64{}
	for _, tu := range tuples {
		m := tu.(map[string]any)
		ref := m["TargetGroupArn"].(map[string]any)["Ref"].(string)
		weights[ref] = m["Weight"].(int64)
	}
	assert.EqualValues(t, 1, weights["OneboxTargetGroup"])
	assert.EqualValues(t, 99, weights["FleetTargetGroup"])
}

func TestStack_StagesShareOneTaskDefinition(t *testing.T) {
	tmpl := buildStack(t)

	for _, name := range []string{"OneboxService", "FleetService"} {
		svc := props(t, tmpl, name)
		assert.Equal(t, map[string]any{"Ref": "WebApiTaskDefinition"}, svc["TaskDefinition"], name)
		assert.Equal(t, map[string]any{"Ref": "WebApiCluster"}, svc["Cluster"], name)
	}

	td := props(t, tmpl, "WebApiTaskDefinition")
	containers := td["ContainerDefinitions"].([]any)
	require.Len(t, containers, 1)

	container := containers[0].(map[string]any)
	assert.Equal(t, "web-api", container["Name"])
	// The image is the stack parameter, not a baked-in URI; promotion swaps
	// the parameter, never the template.
	assert.Equal(t, map[string]any{"Ref": "ContainerImageUri"}, container["Image"])
}

func TestStack_Capacity(t *testing.T) {
	tmpl := buildStack(t)

	assert.EqualValues(t, 3, props(t, tmpl, "OneboxService")["DesiredCount"])
	assert.EqualValues(t, 10, props(t, tmpl, "FleetService")["DesiredCount"])

	onebox := props(t, tmpl, "OneboxScalableTarget")
	assert.EqualValues(t, 3, onebox["MinCapacity"])
	assert.EqualValues(t, 10, onebox["MaxCapacity"])

	fleet := props(t, tmpl, "FleetScalableTarget")
	assert.EqualValues(t, 10, fleet["MinCapacity"])
	assert.EqualValues(t, 1000, fleet["MaxCapacity"])
}

func TestStack_CPUTargetTracking(t *testing.T) {
	tmpl := buildStack(t)

	for _, name := range []string{"OneboxCPUScalingPolicy", "FleetCPUScalingPolicy"} {
		policy := props(t, tmpl, name)
		assert.Equal(t, "TargetTrackingScaling", policy["PolicyType"], name)

		config := policy["TargetTrackingScalingPolicyConfiguration"].(map[string]any)
		assert.EqualValues(t, 75, config["TargetValue"])
		assert.EqualValues(t, 120, config["ScaleInCooldown"])
		assert.EqualValues(t, 60, config["ScaleOutCooldown"])

		metric := config["PredefinedMetricSpecification"].(map[string]any)
		assert.Equal(t, "ECSServiceAverageCPUUtilization", metric["PredefinedMetricType"])
	}
}

func TestStack_LatencyAlarms(t *testing.T) {
	tmpl := buildStack(t)

	cases := map[string]string{
		"OneboxLatencyAlarm": "OneboxTargetGroup",
		"FleetLatencyAlarm":  "FleetTargetGroup",
	}
	for name, targetGroup := range cases {
		alarm := props(t, tmpl, name)

		assert.Equal(t, "AWS/ApplicationELB", alarm["Namespace"], name)
		assert.Equal(t, "TargetResponseTime", alarm["MetricName"], name)
		assert.Equal(t, "TM(90%:100%)", alarm["ExtendedStatistic"], name)
		assert.EqualValues(t, 60, alarm["Period"], name)
		assert.EqualValues(t, 3, alarm["Threshold"], name)
		assert.EqualValues(t, 4, alarm["EvaluationPeriods"], name)
		assert.EqualValues(t, 3, alarm["DatapointsToAlarm"], name)
		assert.Equal(t, "GreaterThanThreshold", alarm["ComparisonOperator"], name)
		assert.Equal(t, "notBreaching", alarm["TreatMissingData"], name)

		dims := alarm["Dimensions"].([]any)
		require.Len(t, dims, 2, name)
		tg := dims[0].(map[string]any)
		assert.Equal(t, map[string]any{
			"Fn::GetAtt": []any{targetGroup, "TargetGroupFullName"},
		}, tg["Value"], name)
	}
}

func TestStack_DeploymentRollback(t *testing.T) {
	tmpl := buildStack(t)

	cases := map[string]string{
		"OneboxService": "web-api-onebox-target-response-time",
		"FleetService":  "web-api-fleet-target-response-time",
	}
	for name, alarmName := range cases {
		config := props(t, tmpl, name)["DeploymentConfiguration"].(map[string]any)

		assert.EqualValues(t, 200, config["MaximumPercent"], name)
		assert.EqualValues(t, 100, config["MinimumHealthyPercent"], name)

		breaker := config["DeploymentCircuitBreaker"].(map[string]any)
		assert.Equal(t, true, breaker["Enable"], name)
		assert.Equal(t, true, breaker["Rollback"], name)

		alarms := config["Alarms"].(map[string]any)
		assert.Equal(t, true, alarms["Enable"], name)
		assert.Equal(t, true, alarms["Rollback"], name)
		assert.Equal(t, []any{alarmName}, alarms["AlarmNames"], name)
	}
}

func TestStack_TasksRunInPrivateSubnets(t *testing.T) {
	tmpl := buildStack(t)

	for _, name := range []string{"OneboxService", "FleetService"} {
		network := props(t, tmpl, name)["NetworkConfiguration"].(map[string]any)
		vpcConfig := network["AwsvpcConfiguration"].(map[string]any)

		assert.Equal(t, "DISABLED", vpcConfig["AssignPublicIp"], name)
		assert.Equal(t, []any{
			map[string]any{"Ref": "PrivateSubnetA"},
			map[string]any{"Ref": "PrivateSubnetB"},
		}, vpcConfig["Subnets"], name)
	}
}

func TestStack_Parameters(t *testing.T) {
	tmpl := buildStack(t)

	env := tmpl.Parameters["Environment"]
	assert.Equal(t, "String", env.Type)
	assert.Equal(t, "prod", env.Default)
	assert.Equal(t, []any{"sandbox", "prod"}, env.AllowedValues)

	image := tmpl.Parameters["ContainerImageUri"]
	assert.Equal(t, "nginx:1.23.3", image.Default)
}

func TestStack_Outputs(t *testing.T) {
	tmpl := buildStack(t)

	endpoint := tmpl.Outputs["WebApiEndpoint"]
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"WebApiLoadBalancer", "DNSName"},
	}, endpoint.Value)

	image := tmpl.Outputs["RuntimeContainerImageUri"]
	assert.Equal(t, map[string]any{"Ref": "ContainerImageUri"}, image.Value)
}

func TestStack_PassesPolicyLint(t *testing.T) {
	tmpl := buildStack(t)

	result := lint.LintTemplate(tmpl, lint.Options{})
	assert.True(t, result.Success, "policy issues: %v", result.Issues)
}
