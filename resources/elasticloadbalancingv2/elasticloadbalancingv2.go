// Package elasticloadbalancingv2 provides CloudFormation resource types for
// Application Load Balancers.
package elasticloadbalancingv2

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// LoadBalancer represents an AWS::ElasticLoadBalancingV2::LoadBalancer resource.
type LoadBalancer struct {
	Name           any
	Scheme         string
	Type           string
	IpAddressType  string
	Subnets        []any
	SecurityGroups []any
	Tags           []any

	// DNSName is the GetAtt attribute for the public DNS name.
	DNSName stagewire.AttrRef
	// LoadBalancerFullName is the GetAtt attribute used in CloudWatch metric dimensions.
	LoadBalancerFullName stagewire.AttrRef
	// CanonicalHostedZoneID is the GetAtt attribute for Route53 alias records.
	CanonicalHostedZoneID stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (LoadBalancer) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

// TargetGroup represents an AWS::ElasticLoadBalancingV2::TargetGroup resource.
type TargetGroup struct {
	Name                       any
	Port                       int
	Protocol                   string
	TargetType                 string
	VpcId                      any
	HealthCheckPath            string
	HealthCheckProtocol        string
	HealthCheckIntervalSeconds int
	HealthCheckTimeoutSeconds  int
	HealthyThresholdCount      int
	UnhealthyThresholdCount    int
	TargetGroupAttributes      []any
	Tags                       []any

	// TargetGroupFullName is the GetAtt attribute used in CloudWatch metric dimensions.
	TargetGroupFullName stagewire.AttrRef
	// TargetGroupName is the GetAtt attribute for the target group name.
	TargetGroupName stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (TargetGroup) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::TargetGroup"
}

// Listener represents an AWS::ElasticLoadBalancingV2::Listener resource.
type Listener struct {
	LoadBalancerArn any
	Port            int
	Protocol        string
	DefaultActions  []any
}

// ResourceType returns the CloudFormation type.
func (Listener) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::Listener"
}

// Listener_Action is a listener action.
type Listener_Action struct {
	Type           string
	Order          int
	TargetGroupArn any
	ForwardConfig  any
}

// Listener_ForwardConfig distributes traffic across weighted target groups.
type Listener_ForwardConfig struct {
	TargetGroups []any
}

// Listener_TargetGroupTuple pairs a target group with its forward weight.
type Listener_TargetGroupTuple struct {
	TargetGroupArn any
	Weight         int
}
