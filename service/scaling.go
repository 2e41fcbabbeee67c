// Package service declares the web-api service stack.
//
// This file contains autoscaling. Both stages track the same CPU setpoint so
// onebox stays a proportional miniature of the fleet under load.
package service

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/applicationautoscaling"
)

// ----------------------------------------------------------------------------
// Scalable Targets
// ----------------------------------------------------------------------------

// OneboxScalableTarget bounds the onebox pool. The floor keeps enough tasks
// to produce meaningful latency samples at one percent of traffic.
var OneboxScalableTarget = applicationautoscaling.ScalableTarget{
	MinCapacity:       deploy.OneboxMinCapacity,
	MaxCapacity:       deploy.OneboxMaxCapacity,
	ResourceId:        Sub{String: "service/${WebApiCluster}/${OneboxService.Name}"},
	RoleARN:           Sub{String: "arn:aws:iam::${AWS::AccountId}:role/aws-service-role/ecs.application-autoscaling.amazonaws.com/AWSServiceRoleForApplicationAutoScaling_ECSService"},
	ScalableDimension: "ecs:service:DesiredCount",
	ServiceNamespace:  "ecs",
}

// FleetScalableTarget bounds the fleet pool.
var FleetScalableTarget = applicationautoscaling.ScalableTarget{
	MinCapacity:       deploy.FleetMinCapacity,
	MaxCapacity:       deploy.FleetMaxCapacity,
	ResourceId:        Sub{String: "service/${WebApiCluster}/${FleetService.Name}"},
	RoleARN:           Sub{String: "arn:aws:iam::${AWS::AccountId}:role/aws-service-role/ecs.application-autoscaling.amazonaws.com/AWSServiceRoleForApplicationAutoScaling_ECSService"},
	ScalableDimension: "ecs:service:DesiredCount",
	ServiceNamespace:  "ecs",
}

// ----------------------------------------------------------------------------
// Scaling Policies
// ----------------------------------------------------------------------------

// CPUTargetTracking holds average CPU at the shared setpoint.
var CPUTargetTracking = applicationautoscaling.ScalingPolicy_TargetTrackingScalingPolicyConfiguration{
	PredefinedMetricSpecification: applicationautoscaling.ScalingPolicy_PredefinedMetricSpecification{
		PredefinedMetricType: "ECSServiceAverageCPUUtilization",
	},
	TargetValue:      deploy.CPUTargetUtilizationPercent,
	ScaleInCooldown:  120,
	ScaleOutCooldown: 60,
}

// OneboxCPUScalingPolicy scales the onebox pool on CPU.
var OneboxCPUScalingPolicy = applicationautoscaling.ScalingPolicy{
	PolicyName:                               deploy.OneboxServiceName + "-cpu",
	PolicyType:                               "TargetTrackingScaling",
	ScalingTargetId:                          OneboxScalableTarget,
	TargetTrackingScalingPolicyConfiguration: CPUTargetTracking,
}

// FleetCPUScalingPolicy scales the fleet pool on CPU.
var FleetCPUScalingPolicy = applicationautoscaling.ScalingPolicy{
	PolicyName:                               deploy.FleetServiceName + "-cpu",
	PolicyType:                               "TargetTrackingScaling",
	ScalingTargetId:                          FleetScalableTarget,
	TargetTrackingScalingPolicyConfiguration: CPUTargetTracking,
}
