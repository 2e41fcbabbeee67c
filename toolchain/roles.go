// Package toolchain declares the web-api delivery pipeline stack.
//
// This file contains the pipeline, build and deployment roles.
package toolchain

import (
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

// ----------------------------------------------------------------------------
// Pipeline Role
// ----------------------------------------------------------------------------

// PipelineAssumeRolePolicy is the trust policy for the pipeline role.
var PipelineAssumeRolePolicy = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		PolicyStatement{
			Effect:    "Allow",
			Principal: ServicePrincipal{"codepipeline.amazonaws.com"},
			Action:    "sts:AssumeRole",
		},
	},
}

// PipelineArtifactAccess lets the pipeline read and write artifacts.
var PipelineArtifactAccess = PolicyStatement{
	Effect: "Allow",
	Action: []any{
		"s3:GetObject",
		"s3:GetObjectVersion",
		"s3:PutObject",
		"s3:GetBucketVersioning",
	},
	Resource: []any{
		Sub{String: "${ArtifactBucket.Arn}"},
		Sub{String: "${ArtifactBucket.Arn}/*"},
	},
}

// PipelineActionAccess lets the pipeline drive its source, build and deploy
// actions. The scope follows the actions the pipeline declares; anything the
// pipeline cannot express as an action is out of reach.
var PipelineActionAccess = PolicyStatement{
	Effect: "Allow",
	Action: []any{
		"codecommit:GetBranch",
		"codecommit:GetCommit",
		"codecommit:UploadArchive",
		"codecommit:GetUploadArchiveStatus",
		"codebuild:StartBuild",
		"codebuild:BatchGetBuilds",
		"cloudformation:CreateStack",
		"cloudformation:UpdateStack",
		"cloudformation:DescribeStacks",
		"cloudformation:GetTemplate",
		"ecs:DescribeServices",
		"ecs:DescribeTaskDefinition",
		"ecs:DescribeTasks",
		"ecs:ListTasks",
		"ecs:RegisterTaskDefinition",
		"ecs:UpdateService",
		"ecs:TagResource",
	},
	Resource: "*",
}

// PipelinePassRoleAccess lets the pipeline hand roles to CloudFormation and ECS.
var PipelinePassRoleAccess = PolicyStatement{
	Effect:   "Allow",
	Action:   "iam:PassRole",
	Resource: "*",
}

// PipelineRole is the role the pipeline executes as.
var PipelineRole = iam.Role{
	AssumeRolePolicyDocument: PipelineAssumeRolePolicy,
	Policies: []any{
		iam.Role_Policy{
			PolicyName: "pipeline-access",
			PolicyDocument: PolicyDocument{
				Version: "2012-10-17",
				Statement: []any{
					PipelineArtifactAccess,
					PipelineActionAccess,
					PipelinePassRoleAccess,
				},
			},
		},
	},
}

// ----------------------------------------------------------------------------
// Build Role
// ----------------------------------------------------------------------------

// BuildAssumeRolePolicy is the trust policy for the build role.
var BuildAssumeRolePolicy = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		PolicyStatement{
			Effect:    "Allow",
			Principal: ServicePrincipal{"codebuild.amazonaws.com"},
			Action:    "sts:AssumeRole",
		},
	},
}

// BuildLogAccess lets build containers write their logs.
var BuildLogAccess = PolicyStatement{
	Effect: "Allow",
	Action: []any{
		"logs:CreateLogGroup",
		"logs:CreateLogStream",
		"logs:PutLogEvents",
	},
	Resource: "*",
}

// BuildArtifactAccess lets build containers exchange pipeline artifacts.
var BuildArtifactAccess = PolicyStatement{
	Effect: "Allow",
	Action: []any{
		"s3:GetObject",
		"s3:GetObjectVersion",
		"s3:PutObject",
	},
	Resource: []any{
		Sub{String: "${ArtifactBucket.Arn}/*"},
	},
}

// BuildRole is the role both CodeBuild projects execute as.
var BuildRole = iam.Role{
	AssumeRolePolicyDocument: BuildAssumeRolePolicy,
	Policies: []any{
		iam.Role_Policy{
			PolicyName: "build-access",
			PolicyDocument: PolicyDocument{
				Version: "2012-10-17",
				Statement: []any{
					BuildLogAccess,
					BuildArtifactAccess,
				},
			},
		},
	},
}

// ----------------------------------------------------------------------------
// Deployment Role
// ----------------------------------------------------------------------------

// DeployAssumeRolePolicy is the trust policy for the deployment role.
var DeployAssumeRolePolicy = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		PolicyStatement{
			Effect:    "Allow",
			Principal: ServicePrincipal{"cloudformation.amazonaws.com"},
			Action:    "sts:AssumeRole",
		},
	},
}

// CloudFormationDeployRole is the role CloudFormation assumes to create and
// update the service stack. The service stack declares IAM roles, networking
// and compute, so the deployment role is administrative.
var CloudFormationDeployRole = iam.Role{
	AssumeRolePolicyDocument: DeployAssumeRolePolicy,
	ManagedPolicyArns: []any{
		"arn:aws:iam::aws:policy/AdministratorAccess",
	},
}
