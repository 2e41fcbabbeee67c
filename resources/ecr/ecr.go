// Package ecr provides CloudFormation resource types for Amazon ECR.
package ecr

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Repository represents an AWS::ECR::Repository resource.
type Repository struct {
	RepositoryName             any
	ImageTagMutability         string
	ImageScanningConfiguration any
	EmptyOnDelete              bool
	Tags                       []any

	// Arn is the GetAtt attribute for the repository ARN.
	Arn stagewire.AttrRef
	// RepositoryUri is the GetAtt attribute for the registry/repository URI.
	RepositoryUri stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Repository) ResourceType() string { return "AWS::ECR::Repository" }

// Repository_ImageScanningConfiguration enables image scanning on push.
type Repository_ImageScanningConfiguration struct {
	ScanOnPush bool
}
