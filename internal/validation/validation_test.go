package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/ec2"
)

func TestCheckRegistry_Agreement(t *testing.T) {
	d := &discover.Result{
		Resources: map[string]stagewire.DiscoveredResource{
			"VPC": {Name: "VPC", Type: "ec2.VPC"},
		},
		Parameters: map[string]stagewire.DiscoveredParameter{
			"Environment": {Name: "Environment"},
		},
		Outputs: map[string]stagewire.DiscoveredOutput{},
	}
	p := registry.Provider{
		Declarations: map[string]any{"VPC": ec2.VPC{CidrBlock: "10.0.0.0/16"}},
		Parameters:   map[string]*intrinsics.Parameter{"Environment": {Type: "String"}},
	}

	assert.Empty(t, CheckRegistry(d, p))
}

func TestCheckRegistry_UnregisteredDeclaration(t *testing.T) {
	d := &discover.Result{
		Resources: map[string]stagewire.DiscoveredResource{
			"VPC": {Name: "VPC", Type: "ec2.VPC", File: "network.go", Line: 12},
		},
	}
	p := registry.Provider{Declarations: map[string]any{}}

	errs := CheckRegistry(d, p)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "VPC")
	assert.Contains(t, errs[0].Error(), "not registered")
	assert.Contains(t, errs[0].Error(), "network.go:12")
}

func TestCheckRegistry_StaleRegistryEntry(t *testing.T) {
	d := &discover.Result{Resources: map[string]stagewire.DiscoveredResource{}}
	p := registry.Provider{
		Declarations: map[string]any{"RemovedBucket": ec2.VPC{}},
	}

	errs := CheckRegistry(d, p)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "RemovedBucket")
	assert.Contains(t, errs[0].Error(), "no matching declaration")
}

func TestCheckRequired_MissingProperties(t *testing.T) {
	tmpl := &stagewire.Template{
		Resources: map[string]stagewire.ResourceDef{
			"OneboxService": {
				Type: "AWS::ECS::Service",
				Properties: map[string]any{
					"Cluster": map[string]any{"Ref": "WebApiCluster"},
				},
			},
		},
	}

	errs := CheckRequired(tmpl)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "TaskDefinition")
}

func TestCheckRequired_Satisfied(t *testing.T) {
	tmpl := &stagewire.Template{
		Resources: map[string]stagewire.ResourceDef{
			"VPC": {
				Type:       "AWS::EC2::VPC",
				Properties: map[string]any{"CidrBlock": "10.0.0.0/16"},
			},
			"AppLogGroup": {
				Type: "AWS::Logs::LogGroup",
			},
		},
	}

	assert.Empty(t, CheckRequired(tmpl))
}
