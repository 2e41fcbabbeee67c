package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/intrinsics"
)

type TestBucket struct {
	BucketName  string            `json:"BucketName,omitempty"`
	Tags        []Tag             `json:"Tags,omitempty"`
	Versioning  *TestVersioning   `json:"VersioningConfiguration,omitempty"`
	Environment map[string]string `json:"Environment,omitempty"`
}

type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type TestVersioning struct {
	Status string `json:"Status"`
}

type TestService struct {
	ServiceName  string            `json:"ServiceName,omitempty"`
	Cluster      any               `json:"Cluster,omitempty"`
	RoleArn      stagewire.AttrRef `json:"RoleArn,omitempty"`
	DesiredCount int               `json:"DesiredCount,omitempty"`
}

func TestProperties_SimpleStruct(t *testing.T) {
	bucket := TestBucket{
		BucketName: "my-bucket",
	}

	props, err := Properties(bucket, Options{})
	require.NoError(t, err)

	assert.Equal(t, "my-bucket", props["BucketName"])
	assert.NotContains(t, props, "Tags")                    // empty slice omitted
	assert.NotContains(t, props, "VersioningConfiguration") // nil pointer omitted
}

func TestProperties_WithNestedStruct(t *testing.T) {
	bucket := TestBucket{
		BucketName: "my-bucket",
		Versioning: &TestVersioning{
			Status: "Enabled",
		},
	}

	props, err := Properties(bucket, Options{})
	require.NoError(t, err)

	versioning := props["VersioningConfiguration"].(map[string]any)
	assert.Equal(t, "Enabled", versioning["Status"])
}

func TestProperties_WithSlice(t *testing.T) {
	bucket := TestBucket{
		BucketName: "my-bucket",
		Tags: []Tag{
			{Key: "Stage", Value: "onebox"},
			{Key: "Team", Value: "platform"},
		},
	}

	props, err := Properties(bucket, Options{})
	require.NoError(t, err)

	tags := props["Tags"].([]any)
	require.Len(t, tags, 2)

	tag0 := tags[0].(map[string]any)
	assert.Equal(t, "Stage", tag0["Key"])
	assert.Equal(t, "onebox", tag0["Value"])
}

func TestProperties_WithMap(t *testing.T) {
	bucket := TestBucket{
		Environment: map[string]string{
			"BUCKET_NAME": "my-bucket",
		},
	}

	props, err := Properties(bucket, Options{})
	require.NoError(t, err)

	env := props["Environment"].(map[string]any)
	assert.Equal(t, "my-bucket", env["BUCKET_NAME"])
}

func TestProperties_ZeroAttrRefOmitted(t *testing.T) {
	svc := TestService{
		ServiceName: "web-api-onebox",
	}

	props, err := Properties(svc, Options{})
	require.NoError(t, err)

	// An unpopulated AttrRef is filled in later by the template builder;
	// until then it must not serialize.
	assert.NotContains(t, props, "RoleArn")
}

func TestProperties_PopulatedAttrRef(t *testing.T) {
	svc := TestService{
		RoleArn: stagewire.AttrRef{Resource: "TaskRole", Attribute: "Arn"},
	}

	props, err := Properties(svc, Options{})
	require.NoError(t, err)

	getAtt := props["RoleArn"].(map[string]any)
	assert.Equal(t, []any{"TaskRole", "Arn"}, getAtt["Fn::GetAtt"])
}

func TestProperties_IntrinsicMarshaler(t *testing.T) {
	svc := TestService{
		Cluster: intrinsics.Sub{String: "web-api-${Environment}"},
	}

	props, err := Properties(svc, Options{})
	require.NoError(t, err)

	cluster := props["Cluster"].(map[string]any)
	assert.Equal(t, "web-api-${Environment}", cluster["Fn::Sub"])
}

func TestProperties_ResolverSubstitutesDeclarations(t *testing.T) {
	cluster := TestBucket{BucketName: "cluster-stand-in"}
	svc := TestService{
		ServiceName: "web-api-fleet",
		Cluster:     cluster,
	}

	opts := Options{
		Resolve: func(v any) (any, bool) {
			if b, ok := v.(TestBucket); ok && b.BucketName == "cluster-stand-in" {
				return intrinsics.Ref{Name: "WebApiCluster"}, true
			}
			return nil, false
		},
	}

	props, err := Properties(svc, opts)
	require.NoError(t, err)

	ref := props["Cluster"].(map[string]any)
	assert.Equal(t, "WebApiCluster", ref["Ref"])
}

func TestProperties_ResolverNotAppliedToRoot(t *testing.T) {
	bucket := TestBucket{BucketName: "my-bucket"}

	opts := Options{
		Resolve: func(v any) (any, bool) {
			// Would collapse the root into a Ref to itself.
			if _, ok := v.(TestBucket); ok {
				return intrinsics.Ref{Name: "Oops"}, true
			}
			return nil, false
		},
	}

	props, err := Properties(bucket, opts)
	require.NoError(t, err)

	// The root keeps its fields; only nested declarations resolve.
	assert.Equal(t, "my-bucket", props["BucketName"])
	assert.NotContains(t, props, "Ref")
}

func TestValue_ScalarAndIntrinsic(t *testing.T) {
	v, err := Value("web-api", Options{})
	require.NoError(t, err)
	assert.Equal(t, "web-api", v)

	v, err = Value(intrinsics.Ref{Name: "ContainerImageUri"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Ref": "ContainerImageUri"}, v)
}
