// Package ecs provides CloudFormation resource types for Amazon ECS.
package ecs

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Cluster represents an AWS::ECS::Cluster resource.
type Cluster struct {
	ClusterName     any
	ClusterSettings []any
	Tags            []any

	// Arn is the GetAtt attribute for the cluster ARN.
	Arn stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Cluster) ResourceType() string { return "AWS::ECS::Cluster" }

// Cluster_ClusterSettings configures a cluster setting such as containerInsights.
type Cluster_ClusterSettings struct {
	Name  string
	Value string
}

// TaskDefinition represents an AWS::ECS::TaskDefinition resource.
type TaskDefinition struct {
	Family                  any
	NetworkMode             string
	RequiresCompatibilities []any
	Cpu                     string
	Memory                  string
	ExecutionRoleArn        any
	TaskRoleArn             any
	ContainerDefinitions    []any
	Tags                    []any
}

// ResourceType returns the CloudFormation type.
func (TaskDefinition) ResourceType() string { return "AWS::ECS::TaskDefinition" }

// TaskDefinition_ContainerDefinition defines a container within a task.
type TaskDefinition_ContainerDefinition struct {
	Name             string
	Image            any
	Essential        bool
	Cpu              int
	Memory           int
	PortMappings     []any
	Environment      []any
	LogConfiguration any
}

// TaskDefinition_PortMapping exposes a container port.
type TaskDefinition_PortMapping struct {
	ContainerPort int
	HostPort      int
	Protocol      string
}

// TaskDefinition_KeyValuePair is a container environment variable.
type TaskDefinition_KeyValuePair struct {
	Name  string
	Value any
}

// TaskDefinition_LogConfiguration configures the container log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string
	Options   map[string]any
}
