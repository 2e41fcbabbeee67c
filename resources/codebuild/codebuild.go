// Package codebuild provides CloudFormation resource types for AWS CodeBuild.
package codebuild

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Project represents an AWS::CodeBuild::Project resource.
type Project struct {
	Name             any
	Description      string
	ServiceRole      any
	Artifacts        any
	Environment      any
	Source           any
	TimeoutInMinutes int
	Tags             []any

	// Arn is the GetAtt attribute for the project ARN.
	Arn stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Project) ResourceType() string { return "AWS::CodeBuild::Project" }

// Project_Artifacts configures build output artifacts.
type Project_Artifacts struct {
	Type string
}

// Project_Environment configures the build container.
type Project_Environment struct {
	ComputeType          string
	Image                string
	Type                 string
	PrivilegedMode       bool
	EnvironmentVariables []any
}

// Project_EnvironmentVariable is a build environment variable.
type Project_EnvironmentVariable struct {
	Name  string
	Type  string
	Value any
}

// Project_Source configures the build input.
type Project_Source struct {
	Type      string
	BuildSpec string
}
