package ecs

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Service represents an AWS::ECS::Service resource.
type Service struct {
	ServiceName                   any
	Cluster                       any
	TaskDefinition                any
	DesiredCount                  int
	LaunchType                    string
	NetworkConfiguration          any
	DeploymentConfiguration       any
	LoadBalancers                 []any
	HealthCheckGracePeriodSeconds int
	EnableECSManagedTags          bool
	PropagateTags                 string
	Tags                          []any

	// Name is the GetAtt attribute for the service name.
	Name stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Service) ResourceType() string { return "AWS::ECS::Service" }

// Service_NetworkConfiguration wraps the VPC configuration for awsvpc tasks.
type Service_NetworkConfiguration struct {
	AwsvpcConfiguration any
}

// Service_AwsVpcConfiguration configures VPC networking for a service.
type Service_AwsVpcConfiguration struct {
	AssignPublicIp string
	Subnets        []any
	SecurityGroups []any
}

// Service_DeploymentConfiguration controls rollout behavior for a service.
type Service_DeploymentConfiguration struct {
	MaximumPercent           int
	MinimumHealthyPercent    int
	DeploymentCircuitBreaker any
	Alarms                   any
}

// Service_DeploymentCircuitBreaker rolls back a deployment that cannot
// reach a steady state.
type Service_DeploymentCircuitBreaker struct {
	Enable   bool
	Rollback bool
}

// Service_DeploymentAlarms rolls back an in-flight deployment when any
// of the named CloudWatch alarms moves into the ALARM state.
type Service_DeploymentAlarms struct {
	AlarmNames []any
	Enable     bool
	Rollback   bool
}

// Service_LoadBalancer registers the service's containers with a target group.
type Service_LoadBalancer struct {
	ContainerName  string
	ContainerPort  int
	TargetGroupArn any
}
