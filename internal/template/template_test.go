package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/ec2"
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
	"github.com/stagewire/stagewire-aws-go/resources/elasticloadbalancingv2"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

// fixtureResult builds a discover.Result by hand; discovery itself is covered
// in its own package.
func fixtureResult(resources map[string]stagewire.DiscoveredResource) *discover.Result {
	return &discover.Result{
		Resources:   resources,
		Parameters:  map[string]stagewire.DiscoveredParameter{},
		Outputs:     map[string]stagewire.DiscoveredOutput{},
		AllVars:     map[string]bool{},
		VarAttrRefs: map[string]discover.VarAttrRefInfo{},
	}
}

func TestBuild_ResolvesDirectReferences(t *testing.T) {
	vpc := ec2.VPC{CidrBlock: "10.0.0.0/16"}
	tg := elasticloadbalancingv2.TargetGroup{
		Protocol: "HTTP",
		VpcId:    vpc,
	}

	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"VPC": {Name: "VPC", Type: "ec2.VPC"},
		"OneboxTargetGroup": {
			Name:         "OneboxTargetGroup",
			Type:         "elasticloadbalancingv2.TargetGroup",
			Dependencies: []string{"VPC"},
		},
	})

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"VPC":               vpc,
			"OneboxTargetGroup": tg,
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	res := tmpl.Resources["OneboxTargetGroup"]
	assert.Equal(t, "AWS::ElasticLoadBalancingV2::TargetGroup", res.Type)
	assert.Equal(t, map[string]any{"Ref": "VPC"}, res.Properties["VpcId"])
	assert.Equal(t, []string{"VPC"}, res.DependsOn)
}

func TestBuild_InjectsAttrRefs(t *testing.T) {
	lb := elasticloadbalancingv2.LoadBalancer{Name: "web-api"}
	listener := elasticloadbalancingv2.Listener{Port: 80}

	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"WebApiLoadBalancer": {Name: "WebApiLoadBalancer", Type: "elasticloadbalancingv2.LoadBalancer"},
		"HttpListener": {
			Name:         "HttpListener",
			Type:         "elasticloadbalancingv2.Listener",
			Dependencies: []string{"WebApiLoadBalancer"},
			AttrRefUsages: []stagewire.AttrRefUsage{
				{ResourceName: "WebApiLoadBalancer", Attribute: "LoadBalancerArn", FieldPath: "LoadBalancerArn"},
			},
		},
	})
	d.VarAttrRefs["HttpListener"] = discover.VarAttrRefInfo{
		AttrRefs: []stagewire.AttrRefUsage{
			{ResourceName: "WebApiLoadBalancer", Attribute: "LoadBalancerArn", FieldPath: "LoadBalancerArn"},
		},
	}

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"WebApiLoadBalancer": lb,
			"HttpListener":       listener,
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	res := tmpl.Resources["HttpListener"]
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"WebApiLoadBalancer", "LoadBalancerArn"},
	}, res.Properties["LoadBalancerArn"])
}

func TestBuild_ReferencedResourceStaysBareRef(t *testing.T) {
	role := iam.Role{RoleName: "task-execution-role"}
	td := ecs.TaskDefinition{
		Family:           "web-api",
		ExecutionRoleArn: role.Arn,
	}
	svc := ecs.Service{
		ServiceName:    "web-api-fleet",
		TaskDefinition: td,
	}

	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"TaskExecutionRole": {Name: "TaskExecutionRole", Type: "iam.Role"},
		"WebApiTaskDefinition": {
			Name:         "WebApiTaskDefinition",
			Type:         "ecs.TaskDefinition",
			Dependencies: []string{"TaskExecutionRole"},
			AttrRefUsages: []stagewire.AttrRefUsage{
				{ResourceName: "TaskExecutionRole", Attribute: "Arn", FieldPath: "ExecutionRoleArn"},
			},
		},
		"FleetService": {
			Name:         "FleetService",
			Type:         "ecs.Service",
			Dependencies: []string{"WebApiTaskDefinition"},
		},
	})
	d.VarAttrRefs["WebApiTaskDefinition"] = discover.VarAttrRefInfo{
		AttrRefs: []stagewire.AttrRefUsage{
			{ResourceName: "TaskExecutionRole", Attribute: "Arn", FieldPath: "ExecutionRoleArn"},
		},
	}
	d.VarAttrRefs["FleetService"] = discover.VarAttrRefInfo{
		VarRefs: map[string]string{"TaskDefinition": "WebApiTaskDefinition"},
	}

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"TaskExecutionRole":    role,
			"WebApiTaskDefinition": td,
			"FleetService":         svc,
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	// The service references the task definition by value; the template must
	// carry a bare Ref, never the task definition's own attribute references.
	assert.Equal(t, map[string]any{"Ref": "WebApiTaskDefinition"},
		tmpl.Resources["FleetService"].Properties["TaskDefinition"])

	// The GetAtt lands on the task definition itself.
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"TaskExecutionRole", "Arn"},
	}, tmpl.Resources["WebApiTaskDefinition"].Properties["ExecutionRoleArn"])
}

func TestInjectAttrRefs_NeverDescendsIntoIntrinsics(t *testing.T) {
	props := map[string]any{
		"NatGatewayId": map[string]any{"Ref": "NATGateway"},
	}

	injectAttrRefs(props, []stagewire.AttrRefUsage{
		{ResourceName: "ElasticIP", Attribute: "AllocationId", FieldPath: "NatGatewayId.AllocationId"},
	})

	assert.Equal(t, map[string]any{
		"NatGatewayId": map[string]any{"Ref": "NATGateway"},
	}, props)
}

func TestBuild_EmitsParameters(t *testing.T) {
	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"VPC": {Name: "VPC", Type: "ec2.VPC"},
	})
	d.Parameters["Environment"] = stagewire.DiscoveredParameter{Name: "Environment"}

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"VPC": ec2.VPC{CidrBlock: "10.0.0.0/16"},
		},
		Parameters: map[string]*intrinsics.Parameter{
			"Environment": {
				Type:          "String",
				Default:       "prod",
				AllowedValues: []any{"sandbox", "prod"},
			},
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	param := tmpl.Parameters["Environment"]
	assert.Equal(t, "String", param.Type)
	assert.Equal(t, "prod", param.Default)
	assert.Equal(t, []any{"sandbox", "prod"}, param.AllowedValues)
}

func TestBuild_EmitsOutputs(t *testing.T) {
	lb := elasticloadbalancingv2.LoadBalancer{Name: "web-api"}

	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"WebApiLoadBalancer": {Name: "WebApiLoadBalancer", Type: "elasticloadbalancingv2.LoadBalancer"},
	})
	d.Outputs["WebApiEndpoint"] = stagewire.DiscoveredOutput{
		Name: "WebApiEndpoint",
		AttrRefUsages: []stagewire.AttrRefUsage{
			{ResourceName: "WebApiLoadBalancer", Attribute: "DNSName", FieldPath: "Value"},
		},
	}

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{"WebApiLoadBalancer": lb},
		Outputs: map[string]intrinsics.Output{
			"WebApiEndpoint": {
				Description: "Public DNS name of the load balancer",
				Value:       lb.DNSName,
			},
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	out := tmpl.Outputs["WebApiEndpoint"]
	assert.Equal(t, "Public DNS name of the load balancer", out.Description)
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"WebApiLoadBalancer", "DNSName"},
	}, out.Value)
}

func TestBuild_TopologicalOrder(t *testing.T) {
	vpc := ec2.VPC{CidrBlock: "10.0.0.0/16"}
	igw := ec2.InternetGateway{}
	attach := ec2.VPCGatewayAttachment{VpcId: vpc, InternetGatewayId: igw}

	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"VPC":             {Name: "VPC", Type: "ec2.VPC"},
		"InternetGateway": {Name: "InternetGateway", Type: "ec2.InternetGateway"},
		"GatewayAttachment": {
			Name:         "GatewayAttachment",
			Type:         "ec2.VPCGatewayAttachment",
			Dependencies: []string{"VPC", "InternetGateway"},
		},
	})

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"VPC":               vpc,
			"InternetGateway":   igw,
			"GatewayAttachment": attach,
		},
	})
	require.NoError(t, err)

	tmpl, err := NewBuilder(d, reg).Build()
	require.NoError(t, err)

	assert.Len(t, tmpl.Resources, 3)
	assert.Equal(t, []string{"InternetGateway", "VPC"}, tmpl.Resources["GatewayAttachment"].DependsOn)
}

func TestBuild_DetectsCycles(t *testing.T) {
	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"A": {Name: "A", Type: "ec2.VPC", Dependencies: []string{"B"}},
		"B": {Name: "B", Type: "ec2.VPC", Dependencies: []string{"A"}},
	})

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{
			"A": ec2.VPC{CidrBlock: "10.0.0.0/16"},
			"B": ec2.VPC{CidrBlock: "10.1.0.0/16"},
		},
	})
	require.NoError(t, err)

	_, err = NewBuilder(d, reg).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestBuild_UnknownTypeIsAnError(t *testing.T) {
	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"Mystery": {Name: "Mystery", Type: "dynamodb.Table"},
	})

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{"Mystery": ec2.VPC{CidrBlock: "10.0.0.0/16"}},
	})
	require.NoError(t, err)

	_, err = NewBuilder(d, reg).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource type")
}

func TestToJSONAndYAML(t *testing.T) {
	d := fixtureResult(map[string]stagewire.DiscoveredResource{
		"VPC": {Name: "VPC", Type: "ec2.VPC"},
	})

	reg, err := registry.New(registry.Provider{
		Declarations: map[string]any{"VPC": ec2.VPC{CidrBlock: "10.0.0.0/16"}},
	})
	require.NoError(t, err)

	builder := NewBuilder(d, reg)
	builder.SetDescription("web-api-prod")

	tmpl, err := builder.Build()
	require.NoError(t, err)

	data, err := ToJSON(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"AWSTemplateFormatVersion": "2010-09-09"`)
	assert.Contains(t, string(data), `"web-api-prod"`)

	yamlData, err := ToYAML(tmpl)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(yamlData), "AWSTemplateFormatVersion:"))
}
