// Package service declares the web-api service stack.
//
// This file contains stack outputs. RuntimeContainerImageUri exists for the
// delivery pipeline: the deploy-stack action exports it into its namespace so
// later promotion actions can pin the exact image the stack is running.
package service

import (
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
)

// WebApiEndpoint is the public entry point for the service.
var WebApiEndpoint = Output{
	Description: "Public DNS name of the web-api load balancer",
	Value:       WebApiLoadBalancer.DNSName,
}

// RuntimeContainerImageUri echoes the image the stack is running so the
// pipeline can read it back as an action variable.
var RuntimeContainerImageUri = Output{
	Description: "Container image URI both service stages are running",
	Value:       ContainerImageUri,
}
