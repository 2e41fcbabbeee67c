// Package s3 provides CloudFormation resource types for Amazon S3.
package s3

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Bucket represents an AWS::S3::Bucket resource.
type Bucket struct {
	BucketName                     any
	VersioningConfiguration        any
	BucketEncryption               any
	PublicAccessBlockConfiguration any
	Tags                           []any

	// Arn is the GetAtt attribute for the bucket ARN.
	Arn stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_VersioningConfiguration enables object versioning.
type Bucket_VersioningConfiguration struct {
	Status string
}

// Bucket_BucketEncryption configures default server-side encryption.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []any
}

// Bucket_ServerSideEncryptionRule is a single encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault any
}

// Bucket_ServerSideEncryptionByDefault selects the default encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm string
}

// Bucket_PublicAccessBlockConfiguration blocks public bucket access.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       bool
	BlockPublicPolicy     bool
	IgnorePublicAcls      bool
	RestrictPublicBuckets bool
}
