// Package toolchain declares the web-api delivery pipeline stack.
//
// This file contains the CodeBuild projects. Synthesis regenerates the
// service template from source on every run, so the deployed stack always
// matches the declarations at the promoted commit.
package toolchain

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/codebuild"
)

// synthBuildSpec regenerates the production service template from source.
const synthBuildSpec = `version: 0.2
phases:
  install:
    runtime-versions:
      golang: 1.24
  build:
    commands:
      - go run ./cmd/stagewire-aws build ./service --stack-name ` + deploy.ProdStackName + ` -o ` + deploy.ProdStackName + `.template.json
artifacts:
  files:
    - ` + deploy.ProdStackName + `.template.json
`

// imageDefinitionBuildSpec writes the image-definitions artifact the ECS
// deploy actions consume. IMAGE_URI arrives from the pipeline as an action
// variable resolved from the deployed stack's outputs.
const imageDefinitionBuildSpec = `version: 0.2
phases:
  install:
    runtime-versions:
      golang: 1.24
  build:
    commands:
      - go run ./cmd/stagewire-aws imagedef --image "$IMAGE_URI"
artifacts:
  base-directory: ecs_deployment
  files:
    - imagedefinitions.json
`

// SynthProject synthesizes the service template.
var SynthProject = codebuild.Project{
	Name:        Sub{String: "${AWS::StackName}-synth"},
	Description: "Synthesize the web-api service template",
	ServiceRole: BuildRole.Arn,
	Artifacts:   codebuild.Project_Artifacts{Type: "CODEPIPELINE"},
	Environment: codebuild.Project_Environment{
		ComputeType: "BUILD_GENERAL1_SMALL",
		Image:       "aws/codebuild/standard:7.0",
		Type:        "LINUX_CONTAINER",
	},
	Source: codebuild.Project_Source{
		Type:      "CODEPIPELINE",
		BuildSpec: synthBuildSpec,
	},
	TimeoutInMinutes: 15,
}

// ImageDefinitionProject produces the imagedefinitions.json artifact.
var ImageDefinitionProject = codebuild.Project{
	Name:        Sub{String: "${AWS::StackName}-imagedef"},
	Description: "Write the image-definitions artifact for ECS deploy actions",
	ServiceRole: BuildRole.Arn,
	Artifacts:   codebuild.Project_Artifacts{Type: "CODEPIPELINE"},
	Environment: codebuild.Project_Environment{
		ComputeType: "BUILD_GENERAL1_SMALL",
		Image:       "aws/codebuild/standard:7.0",
		Type:        "LINUX_CONTAINER",
	},
	Source: codebuild.Project_Source{
		Type:      "CODEPIPELINE",
		BuildSpec: imageDefinitionBuildSpec,
	},
	TimeoutInMinutes: 15,
}
