// Package service declares the web-api service stack.
//
// This file contains security groups and IAM roles.
package service

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/ec2"
	"github.com/stagewire/stagewire-aws-go/resources/iam"
)

// ----------------------------------------------------------------------------
// Security Groups
// ----------------------------------------------------------------------------

// LoadBalancerHTTPIngress admits HTTP traffic from the internet.
var LoadBalancerHTTPIngress = ec2.SecurityGroup_Ingress{
	Description: "Allow HTTP from internet",
	IpProtocol:  "tcp",
	FromPort:    80,
	ToPort:      80,
	CidrIp:      "0.0.0.0/0",
}

// LoadBalancerEgressAll allows all outbound traffic from the load balancer.
var LoadBalancerEgressAll = ec2.SecurityGroup_Egress{
	Description: "Allow all outbound",
	IpProtocol:  "-1",
	CidrIp:      "0.0.0.0/0",
}

// LoadBalancerSecurityGroup fronts the public load balancer.
var LoadBalancerSecurityGroup = ec2.SecurityGroup{
	GroupDescription:     "Load balancer ingress for web-api",
	VpcId:                VPC,
	SecurityGroupIngress: []any{LoadBalancerHTTPIngress},
	SecurityGroupEgress:  []any{LoadBalancerEgressAll},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${AWS::StackName}-alb-sg"}},
	},
}

// ServiceContainerIngress admits traffic on the container port from the load
// balancer only. The service tier is not reachable from anywhere else.
var ServiceContainerIngress = ec2.SecurityGroup_Ingress{
	Description:           "Allow container port from load balancer",
	IpProtocol:            "tcp",
	FromPort:              deploy.ContainerPort,
	ToPort:                deploy.ContainerPort,
	SourceSecurityGroupId: LoadBalancerSecurityGroup,
}

// ServiceEgressAll allows outbound traffic for image pulls and log delivery.
var ServiceEgressAll = ec2.SecurityGroup_Egress{
	Description: "Allow all outbound",
	IpProtocol:  "-1",
	CidrIp:      "0.0.0.0/0",
}

// ServiceSecurityGroup protects both service stages.
var ServiceSecurityGroup = ec2.SecurityGroup{
	GroupDescription:     "Service tier ingress for web-api",
	VpcId:                VPC,
	SecurityGroupIngress: []any{ServiceContainerIngress},
	SecurityGroupEgress:  []any{ServiceEgressAll},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${AWS::StackName}-service-sg"}},
	},
}

// ----------------------------------------------------------------------------
// IAM Roles
// ----------------------------------------------------------------------------

// ECSAssumeRoleStatement allows ECS tasks to assume the task roles.
var ECSAssumeRoleStatement = PolicyStatement{
	Effect:    "Allow",
	Principal: ServicePrincipal{"ecs-tasks.amazonaws.com"},
	Action:    "sts:AssumeRole",
}

// ECSAssumeRolePolicy is the trust policy for both task roles.
var ECSAssumeRolePolicy = PolicyDocument{
	Version:   "2012-10-17",
	Statement: []any{ECSAssumeRoleStatement},
}

// TaskExecutionRole is the role ECS uses to pull images and write logs.
var TaskExecutionRole = iam.Role{
	RoleName:                 Sub{String: "${AWS::StackName}-task-exec-role"},
	AssumeRolePolicyDocument: ECSAssumeRolePolicy,
	ManagedPolicyArns: []any{
		"arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy",
	},
}

// TaskRole is the role the application container runs as. It carries no
// permissions; the application only serves HTTP.
var TaskRole = iam.Role{
	RoleName:                 Sub{String: "${AWS::StackName}-task-role"},
	AssumeRolePolicyDocument: ECSAssumeRolePolicy,
}
