// Package toolchain declares the web-api delivery pipeline stack: the source
// repository watch, the synthesis build, and the promotion of one image
// through the onebox stage and then the fleet.
package toolchain

import (
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/s3"
)

// ArtifactEncryptionRule encrypts pipeline artifacts at rest.
var ArtifactEncryptionRule = s3.Bucket_ServerSideEncryptionRule{
	ServerSideEncryptionByDefault: s3.Bucket_ServerSideEncryptionByDefault{
		SSEAlgorithm: "aws:kms",
	},
}

// ArtifactBucket stores pipeline artifacts: the source snapshot, the
// synthesized template and the image-definitions file.
var ArtifactBucket = s3.Bucket{
	BucketName: Sub{String: "${AWS::StackName}-artifacts-${AWS::AccountId}"},
	VersioningConfiguration: s3.Bucket_VersioningConfiguration{
		Status: "Enabled",
	},
	BucketEncryption: s3.Bucket_BucketEncryption{
		ServerSideEncryptionConfiguration: []any{ArtifactEncryptionRule},
	},
	PublicAccessBlockConfiguration: s3.Bucket_PublicAccessBlockConfiguration{
		BlockPublicAcls:       true,
		BlockPublicPolicy:     true,
		IgnorePublicAcls:      true,
		RestrictPublicBuckets: true,
	},
}
