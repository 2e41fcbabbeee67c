// Package service declares the web-api service stack.
//
// This file wires the package's declarations into the synthesis registry.
// Every entry key must match the var name of the declaration it points to;
// validation cross-checks these maps against AST discovery.
package service

import (
	"github.com/stagewire/stagewire-aws-go/intrinsics"
)

// Declarations returns every resource in the stack, keyed by logical name.
func Declarations() map[string]any {
	return map[string]any{
		// Network
		"VPC":                                 VPC,
		"InternetGateway":                     InternetGateway,
		"VPCGatewayAttachment":                VPCGatewayAttachment,
		"PublicSubnetA":                       PublicSubnetA,
		"PublicSubnetB":                       PublicSubnetB,
		"PrivateSubnetA":                      PrivateSubnetA,
		"PrivateSubnetB":                      PrivateSubnetB,
		"NATGatewayEIP":                       NATGatewayEIP,
		"NATGateway":                          NATGateway,
		"PublicRouteTable":                    PublicRouteTable,
		"PublicRoute":                         PublicRoute,
		"PublicSubnetARouteTableAssociation":  PublicSubnetARouteTableAssociation,
		"PublicSubnetBRouteTableAssociation":  PublicSubnetBRouteTableAssociation,
		"PrivateRouteTable":                   PrivateRouteTable,
		"PrivateRoute":                        PrivateRoute,
		"PrivateSubnetARouteTableAssociation": PrivateSubnetARouteTableAssociation,
		"PrivateSubnetBRouteTableAssociation": PrivateSubnetBRouteTableAssociation,

		// Security
		"LoadBalancerSecurityGroup": LoadBalancerSecurityGroup,
		"ServiceSecurityGroup":      ServiceSecurityGroup,
		"TaskExecutionRole":         TaskExecutionRole,
		"TaskRole":                  TaskRole,

		// Proxy
		"OneboxTargetGroup":  OneboxTargetGroup,
		"FleetTargetGroup":   FleetTargetGroup,
		"WebApiLoadBalancer": WebApiLoadBalancer,
		"HttpListener":       HttpListener,

		// Compute
		"WebApiCluster":        WebApiCluster,
		"RuntimeRepository":    RuntimeRepository,
		"AppLogGroup":          AppLogGroup,
		"WebApiTaskDefinition": WebApiTaskDefinition,
		"OneboxService":        OneboxService,
		"FleetService":         FleetService,

		// Scaling
		"OneboxScalableTarget":   OneboxScalableTarget,
		"FleetScalableTarget":    FleetScalableTarget,
		"OneboxCPUScalingPolicy": OneboxCPUScalingPolicy,
		"FleetCPUScalingPolicy":  FleetCPUScalingPolicy,

		// Monitoring
		"OneboxLatencyAlarm": OneboxLatencyAlarm,
		"FleetLatencyAlarm":  FleetLatencyAlarm,
	}
}

// Parameters returns the stack parameters, keyed by logical name.
func Parameters() map[string]*intrinsics.Parameter {
	return map[string]*intrinsics.Parameter{
		"Environment":       &Environment,
		"ContainerImageUri": &ContainerImageUri,
	}
}

// Outputs returns the stack outputs, keyed by logical name.
func Outputs() map[string]intrinsics.Output {
	return map[string]intrinsics.Output{
		"WebApiEndpoint":           WebApiEndpoint,
		"RuntimeContainerImageUri": RuntimeContainerImageUri,
	}
}
