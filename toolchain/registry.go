// Package toolchain declares the web-api delivery pipeline stack.
//
// This file wires the package's declarations into the synthesis registry.
package toolchain

import (
	"github.com/stagewire/stagewire-aws-go/intrinsics"
)

// Declarations returns every resource in the stack, keyed by logical name.
func Declarations() map[string]any {
	return map[string]any{
		"ArtifactBucket":           ArtifactBucket,
		"PipelineRole":             PipelineRole,
		"BuildRole":                BuildRole,
		"CloudFormationDeployRole": CloudFormationDeployRole,
		"SynthProject":             SynthProject,
		"ImageDefinitionProject":   ImageDefinitionProject,
		"DeliveryPipeline":         DeliveryPipeline,
	}
}

// Parameters returns the stack parameters, keyed by logical name.
func Parameters() map[string]*intrinsics.Parameter {
	return map[string]*intrinsics.Parameter{}
}

// Outputs returns the stack outputs, keyed by logical name.
func Outputs() map[string]intrinsics.Output {
	return map[string]intrinsics.Output{
		"DeliveryPipelineName": DeliveryPipelineName,
	}
}
