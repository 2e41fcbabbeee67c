// Package service declares the web-api service stack.
//
// This file contains the compute tier: the shared task definition and the two
// ECS services it feeds. Both stages run the same image; only capacity and
// traffic weight differ.
package service

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/ecr"
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
	"github.com/stagewire/stagewire-aws-go/resources/logs"
)

// ----------------------------------------------------------------------------
// Parameters
// ----------------------------------------------------------------------------

// Environment selects the deployment environment for this stack instance.
var Environment = Parameter{
	Type:          "String",
	Description:   "Deployment environment",
	Default:       "prod",
	AllowedValues: []any{"sandbox", "prod"},
}

// ContainerImageUri is the image both stages run. The default is a bootstrap
// image so a fresh production stack comes up serving something before the
// pipeline has published a real application image; synthesis overrides the
// default for sandbox stacks.
var ContainerImageUri = Parameter{
	Type:        "String",
	Description: "Container image URI for the web-api runtime",
	Default:     deploy.BootstrapImage,
}

// ----------------------------------------------------------------------------
// Cluster and Registry
// ----------------------------------------------------------------------------

// WebApiCluster hosts both service stages.
var WebApiCluster = ecs.Cluster{
	ClusterName: Sub{String: "web-api-${Environment}"},
	ClusterSettings: []any{
		ecs.Cluster_ClusterSettings{Name: "containerInsights", Value: "enabled"},
	},
}

// RuntimeRepository receives locally built application images for
// non-production stacks. Production pulls through the pipeline instead.
var RuntimeRepository = ecr.Repository{
	RepositoryName: deploy.RuntimeRepositoryName,
	ImageScanningConfiguration: ecr.Repository_ImageScanningConfiguration{
		ScanOnPush: true,
	},
}

// AppLogGroup collects container logs for both stages.
var AppLogGroup = logs.LogGroup{
	LogGroupName:    Sub{String: "/ecs/${AWS::StackName}/" + deploy.AppName},
	RetentionInDays: 30,
}

// ----------------------------------------------------------------------------
// Task Definition
// ----------------------------------------------------------------------------

// AppPortMapping exposes the application port.
var AppPortMapping = ecs.TaskDefinition_PortMapping{
	ContainerPort: deploy.ContainerPort,
	Protocol:      "tcp",
}

// AppLogConfiguration ships container stdout to the log group.
var AppLogConfiguration = ecs.TaskDefinition_LogConfiguration{
	LogDriver: "awslogs",
	Options: map[string]any{
		"awslogs-group":         AppLogGroup,
		"awslogs-region":        AWS_REGION,
		"awslogs-stream-prefix": deploy.AppName,
	},
}

// AppContainerDefinition is the single application container.
var AppContainerDefinition = ecs.TaskDefinition_ContainerDefinition{
	Name:             deploy.ContainerName,
	Image:            ContainerImageUri,
	Essential:        true,
	PortMappings:     []any{AppPortMapping},
	LogConfiguration: AppLogConfiguration,
}

// WebApiTaskDefinition is shared by both stages. A deployment that produced
// different definitions per stage could drift; one definition makes onebox an
// honest preview of fleet.
var WebApiTaskDefinition = ecs.TaskDefinition{
	Family:                  deploy.AppName,
	NetworkMode:             "awsvpc",
	RequiresCompatibilities: []any{"FARGATE"},
	Cpu:                     deploy.TaskCpu,
	Memory:                  deploy.TaskMemory,
	ExecutionRoleArn:        TaskExecutionRole.Arn,
	TaskRoleArn:             TaskRole.Arn,
	ContainerDefinitions:    []any{AppContainerDefinition},
}

// ----------------------------------------------------------------------------
// Services
// ----------------------------------------------------------------------------

// ServiceVpcConfig places tasks in the private subnets without public IPs.
var ServiceVpcConfig = ecs.Service_AwsVpcConfiguration{
	AssignPublicIp: "DISABLED",
	Subnets:        []any{PrivateSubnetA, PrivateSubnetB},
	SecurityGroups: []any{ServiceSecurityGroup},
}

// ServiceNetwork wraps the VPC configuration for both stages.
var ServiceNetwork = ecs.Service_NetworkConfiguration{
	AwsvpcConfiguration: ServiceVpcConfig,
}

// OneboxService is the permanent canary pool. It runs the same task
// definition as the fleet and absorbs the deployment first.
var OneboxService = ecs.Service{
	ServiceName:                   deploy.OneboxServiceName,
	Cluster:                       WebApiCluster,
	TaskDefinition:                WebApiTaskDefinition,
	DesiredCount:                  deploy.OneboxDesiredCount,
	LaunchType:                    "FARGATE",
	NetworkConfiguration:          ServiceNetwork,
	DeploymentConfiguration:       OneboxDeploymentConfig,
	HealthCheckGracePeriodSeconds: 60,
	EnableECSManagedTags:          true,
	PropagateTags:                 "SERVICE",
	LoadBalancers: []any{
		ecs.Service_LoadBalancer{
			ContainerName:  deploy.ContainerName,
			ContainerPort:  deploy.ContainerPort,
			TargetGroupArn: OneboxTargetGroup,
		},
	},
}

// FleetService carries production traffic. It deploys only after onebox has
// finished, so a regression rolls back before reaching this pool.
var FleetService = ecs.Service{
	ServiceName:                   deploy.FleetServiceName,
	Cluster:                       WebApiCluster,
	TaskDefinition:                WebApiTaskDefinition,
	DesiredCount:                  deploy.FleetDesiredCount,
	LaunchType:                    "FARGATE",
	NetworkConfiguration:          ServiceNetwork,
	DeploymentConfiguration:       FleetDeploymentConfig,
	HealthCheckGracePeriodSeconds: 60,
	EnableECSManagedTags:          true,
	PropagateTags:                 "SERVICE",
	LoadBalancers: []any{
		ecs.Service_LoadBalancer{
			ContainerName:  deploy.ContainerName,
			ContainerPort:  deploy.ContainerPort,
			TargetGroupArn: FleetTargetGroup,
		},
	},
}
