// Package toolchain declares the web-api delivery pipeline stack.
//
// This file contains the pipeline itself. One commit moves through four
// stages: Source, Synth, DeployStack, Promote. The Promote stage pins the
// image the stack is running and rolls it through onebox before the fleet;
// run orders inside the stage enforce that sequence.
package toolchain

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/codepipeline"
)

// ----------------------------------------------------------------------------
// Action Types
// ----------------------------------------------------------------------------

// CodeCommitSourceActionType identifies the CodeCommit source provider.
var CodeCommitSourceActionType = codepipeline.Pipeline_ActionTypeId{
	Category: "Source",
	Owner:    "AWS",
	Provider: "CodeCommit",
	Version:  "1",
}

// CodeBuildActionType identifies the CodeBuild build provider.
var CodeBuildActionType = codepipeline.Pipeline_ActionTypeId{
	Category: "Build",
	Owner:    "AWS",
	Provider: "CodeBuild",
	Version:  "1",
}

// CloudFormationDeployActionType identifies the CloudFormation deploy provider.
var CloudFormationDeployActionType = codepipeline.Pipeline_ActionTypeId{
	Category: "Deploy",
	Owner:    "AWS",
	Provider: "CloudFormation",
	Version:  "1",
}

// ECSDeployActionType identifies the ECS deploy provider.
var ECSDeployActionType = codepipeline.Pipeline_ActionTypeId{
	Category: "Deploy",
	Owner:    "AWS",
	Provider: "ECS",
	Version:  "1",
}

// ----------------------------------------------------------------------------
// Actions
// ----------------------------------------------------------------------------

// SourceAction watches the main branch of the application repository.
var SourceAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "Source",
	ActionTypeId: CodeCommitSourceActionType,
	Configuration: map[string]any{
		"RepositoryName":       deploy.SourceRepositoryName,
		"BranchName":           deploy.SourceBranch,
		"PollForSourceChanges": "false",
	},
	OutputArtifacts: []any{
		codepipeline.Pipeline_OutputArtifact{Name: "SourceOutput"},
	},
	RunOrder: 1,
}

// SynthAction regenerates the service template from the promoted commit.
var SynthAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "Synth",
	ActionTypeId: CodeBuildActionType,
	Configuration: map[string]any{
		"ProjectName": SynthProject,
	},
	InputArtifacts: []any{
		codepipeline.Pipeline_InputArtifact{Name: "SourceOutput"},
	},
	OutputArtifacts: []any{
		codepipeline.Pipeline_OutputArtifact{Name: "SynthOutput"},
	},
	RunOrder: 1,
}

// DeployStackAction applies the synthesized template to the production
// service stack. The namespace exposes the stack's outputs as action
// variables for the Promote stage.
var DeployStackAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "DeployStack",
	ActionTypeId: CloudFormationDeployActionType,
	Configuration: map[string]any{
		"ActionMode":   "CREATE_UPDATE",
		"StackName":    deploy.ProdStackName,
		"TemplatePath": "SynthOutput::" + deploy.ProdStackName + ".template.json",
		"Capabilities": "CAPABILITY_NAMED_IAM",
		"RoleArn":      GetAtt{Resource: "CloudFormationDeployRole", Attribute: "Arn"},
	},
	InputArtifacts: []any{
		codepipeline.Pipeline_InputArtifact{Name: "SynthOutput"},
	},
	Namespace: "DeployStack",
	RunOrder:  1,
}

// GenerateImageDefinitionAction pins the exact image the stack reports it is
// running. The same artifact feeds both ECS deploy actions, so onebox and
// fleet cannot receive different images within one promotion.
var GenerateImageDefinitionAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "GenerateImageDefinition",
	ActionTypeId: CodeBuildActionType,
	Configuration: map[string]any{
		"ProjectName":          ImageDefinitionProject,
		"EnvironmentVariables": `[{"name":"IMAGE_URI","value":"#{DeployStack.RuntimeContainerImageUri}"}]`,
	},
	InputArtifacts: []any{
		codepipeline.Pipeline_InputArtifact{Name: "SourceOutput"},
	},
	OutputArtifacts: []any{
		codepipeline.Pipeline_OutputArtifact{Name: "ImageDefinitionOutput"},
	},
	RunOrder: 1,
}

// DeployOneboxAction rolls the pinned image onto the canary pool. A latency
// alarm during this rollout rolls the deployment back and fails the action,
// stopping the promotion before the fleet.
var DeployOneboxAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "DeployOnebox",
	ActionTypeId: ECSDeployActionType,
	Configuration: map[string]any{
		"ClusterName": deploy.ProdClusterName,
		"ServiceName": deploy.OneboxServiceName,
		"FileName":    "imagedefinitions.json",
	},
	InputArtifacts: []any{
		codepipeline.Pipeline_InputArtifact{Name: "ImageDefinitionOutput"},
	},
	RunOrder: 2,
}

// DeployFleetAction rolls the pinned image onto the fleet after onebox
// succeeds.
var DeployFleetAction = codepipeline.Pipeline_ActionDeclaration{
	Name:         "DeployFleet",
	ActionTypeId: ECSDeployActionType,
	Configuration: map[string]any{
		"ClusterName": deploy.ProdClusterName,
		"ServiceName": deploy.FleetServiceName,
		"FileName":    "imagedefinitions.json",
	},
	InputArtifacts: []any{
		codepipeline.Pipeline_InputArtifact{Name: "ImageDefinitionOutput"},
	},
	RunOrder: 3,
}

// ----------------------------------------------------------------------------
// Stages
// ----------------------------------------------------------------------------

// SourceStage pulls the promoted commit.
var SourceStage = codepipeline.Pipeline_StageDeclaration{
	Name:    "Source",
	Actions: []any{SourceAction},
}

// SynthStage turns the commit into a deployable template.
var SynthStage = codepipeline.Pipeline_StageDeclaration{
	Name:    "Synth",
	Actions: []any{SynthAction},
}

// DeployStackStage applies infrastructure changes before any image moves.
var DeployStackStage = codepipeline.Pipeline_StageDeclaration{
	Name:    "DeployStack",
	Actions: []any{DeployStackAction},
}

// PromoteStage moves one image through onebox and then the fleet.
var PromoteStage = codepipeline.Pipeline_StageDeclaration{
	Name: "Promote",
	Actions: []any{
		GenerateImageDefinitionAction,
		DeployOneboxAction,
		DeployFleetAction,
	},
}

// ----------------------------------------------------------------------------
// Pipeline
// ----------------------------------------------------------------------------

// PipelineArtifactStore places artifacts in the encrypted artifact bucket.
var PipelineArtifactStore = codepipeline.Pipeline_ArtifactStore{
	Type:     "S3",
	Location: ArtifactBucket,
}

// DeliveryPipeline is the web-api delivery pipeline.
var DeliveryPipeline = codepipeline.Pipeline{
	Name:          deploy.PipelineName,
	RoleArn:       PipelineRole.Arn,
	ArtifactStore: PipelineArtifactStore,
	Stages: []any{
		SourceStage,
		SynthStage,
		DeployStackStage,
		PromoteStage,
	},
}

// DeliveryPipelineName identifies the pipeline for operators and scripts.
var DeliveryPipelineName = Output{
	Description: "Name of the web-api delivery pipeline",
	Value:       DeliveryPipeline,
}
