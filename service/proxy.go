// Package service declares the web-api service stack.
//
// This file contains the reverse proxy: one internet-facing load balancer,
// one target group per stage, and a listener whose default action splits
// traffic 1:99 between onebox and fleet.
package service

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/elasticloadbalancingv2"
)

// ----------------------------------------------------------------------------
// Target Groups
// ----------------------------------------------------------------------------

// OneboxTargetGroup receives the canary share of traffic.
var OneboxTargetGroup = elasticloadbalancingv2.TargetGroup{
	Port:                       deploy.ContainerPort,
	Protocol:                   "HTTP",
	TargetType:                 "ip",
	VpcId:                      VPC,
	HealthCheckPath:            "/",
	HealthCheckProtocol:        "HTTP",
	HealthCheckIntervalSeconds: 30,
	HealthCheckTimeoutSeconds:  10,
	Tags: []any{
		Tag{Key: "Stage", Value: "onebox"},
	},
}

// FleetTargetGroup receives the production share of traffic.
var FleetTargetGroup = elasticloadbalancingv2.TargetGroup{
	Port:                       deploy.ContainerPort,
	Protocol:                   "HTTP",
	TargetType:                 "ip",
	VpcId:                      VPC,
	HealthCheckPath:            "/",
	HealthCheckProtocol:        "HTTP",
	HealthCheckIntervalSeconds: 30,
	HealthCheckTimeoutSeconds:  10,
	Tags: []any{
		Tag{Key: "Stage", Value: "fleet"},
	},
}

// ----------------------------------------------------------------------------
// Load Balancer
// ----------------------------------------------------------------------------

// WebApiLoadBalancer is the single public entry point for the service.
var WebApiLoadBalancer = elasticloadbalancingv2.LoadBalancer{
	Scheme:         "internet-facing",
	Type:           "application",
	Subnets:        []any{PublicSubnetA, PublicSubnetB},
	SecurityGroups: []any{LoadBalancerSecurityGroup},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${AWS::StackName}-alb"}},
	},
}

// ----------------------------------------------------------------------------
// Weighted Listener
// ----------------------------------------------------------------------------

// OneboxForwardTarget sends the canary weight to the onebox pool.
var OneboxForwardTarget = elasticloadbalancingv2.Listener_TargetGroupTuple{
	TargetGroupArn: OneboxTargetGroup,
	Weight:         deploy.OneboxWeight,
}

// FleetForwardTarget sends the remaining weight to the fleet pool.
var FleetForwardTarget = elasticloadbalancingv2.Listener_TargetGroupTuple{
	TargetGroupArn: FleetTargetGroup,
	Weight:         deploy.FleetWeight,
}

// WeightedForwardConfig is the fixed 1:99 split. The ratio is static
// configuration; nothing shifts it at runtime.
var WeightedForwardConfig = elasticloadbalancingv2.Listener_ForwardConfig{
	TargetGroups: []any{OneboxForwardTarget, FleetForwardTarget},
}

// DefaultForwardAction forwards every request through the weighted split.
var DefaultForwardAction = elasticloadbalancingv2.Listener_Action{
	Type:          "forward",
	ForwardConfig: WeightedForwardConfig,
}

// HttpListener is the single HTTP listener on port 80.
var HttpListener = elasticloadbalancingv2.Listener{
	LoadBalancerArn: WebApiLoadBalancer,
	Port:            80,
	Protocol:        "HTTP",
	DefaultActions:  []any{DefaultForwardAction},
}
