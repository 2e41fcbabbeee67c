// Package codepipeline provides CloudFormation resource types for AWS CodePipeline.
package codepipeline

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Pipeline represents an AWS::CodePipeline::Pipeline resource.
type Pipeline struct {
	Name                     any
	RoleArn                  any
	ArtifactStore            any
	RestartExecutionOnUpdate bool
	Stages                   []any
	Tags                     []any

	// Version is the GetAtt attribute for the pipeline structure version.
	Version stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Pipeline) ResourceType() string { return "AWS::CodePipeline::Pipeline" }

// Pipeline_ArtifactStore locates the pipeline artifact bucket.
type Pipeline_ArtifactStore struct {
	Type     string
	Location any
}

// Pipeline_StageDeclaration is a pipeline stage.
type Pipeline_StageDeclaration struct {
	Name    string
	Actions []any
}

// Pipeline_ActionDeclaration is a single action within a stage.
// Actions in the same stage run concurrently unless their RunOrder differs;
// a larger RunOrder waits for every smaller one to succeed.
type Pipeline_ActionDeclaration struct {
	Name            string
	ActionTypeId    any
	Configuration   map[string]any
	InputArtifacts  []any
	OutputArtifacts []any
	RunOrder        int
	RoleArn         any
	Namespace       string
	Region          string
}

// Pipeline_ActionTypeId identifies the action provider.
type Pipeline_ActionTypeId struct {
	Category string
	Owner    string
	Provider string
	Version  string
}

// Pipeline_InputArtifact names an artifact consumed by an action.
type Pipeline_InputArtifact struct {
	Name string
}

// Pipeline_OutputArtifact names an artifact produced by an action.
type Pipeline_OutputArtifact struct {
	Name string
}
