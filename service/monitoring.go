// Package service declares the web-api service stack.
//
// This file contains the latency alarms and the rollout configuration they
// gate. Each stage watches its own target-group tail latency; an alarm during
// a deployment rolls that deployment back automatically.
package service

import (
	"github.com/stagewire/stagewire-aws-go/deploy"
	. "github.com/stagewire/stagewire-aws-go/intrinsics"
	"github.com/stagewire/stagewire-aws-go/resources/cloudwatch"
	"github.com/stagewire/stagewire-aws-go/resources/ecs"
)

// ----------------------------------------------------------------------------
// Latency Alarms
// ----------------------------------------------------------------------------

// OneboxLatencyAlarm trips when onebox tail latency degrades. The statistic
// is a trimmed mean over the slowest decile, so a single slow request cannot
// trip it but a shifted tail will.
var OneboxLatencyAlarm = cloudwatch.Alarm{
	AlarmName:         deploy.OneboxLatencyAlarmName,
	AlarmDescription:  "Tail latency on the onebox target group",
	Namespace:         "AWS/ApplicationELB",
	MetricName:        "TargetResponseTime",
	ExtendedStatistic: deploy.LatencyStatistic,
	Dimensions: []any{
		cloudwatch.Alarm_Dimension{
			Name:  "TargetGroup",
			Value: GetAtt{Resource: "OneboxTargetGroup", Attribute: "TargetGroupFullName"},
		},
		cloudwatch.Alarm_Dimension{
			Name:  "LoadBalancer",
			Value: GetAtt{Resource: "WebApiLoadBalancer", Attribute: "LoadBalancerFullName"},
		},
	},
	Period:             deploy.LatencyPeriodSeconds,
	EvaluationPeriods:  deploy.LatencyEvaluationPeriods,
	DatapointsToAlarm:  deploy.LatencyDatapointsToAlarm,
	Threshold:          deploy.LatencyThresholdSeconds,
	ComparisonOperator: "GreaterThanThreshold",
	TreatMissingData:   "notBreaching",
}

// FleetLatencyAlarm trips when fleet tail latency degrades.
var FleetLatencyAlarm = cloudwatch.Alarm{
	AlarmName:         deploy.FleetLatencyAlarmName,
	AlarmDescription:  "Tail latency on the fleet target group",
	Namespace:         "AWS/ApplicationELB",
	MetricName:        "TargetResponseTime",
	ExtendedStatistic: deploy.LatencyStatistic,
	Dimensions: []any{
		cloudwatch.Alarm_Dimension{
			Name:  "TargetGroup",
			Value: GetAtt{Resource: "FleetTargetGroup", Attribute: "TargetGroupFullName"},
		},
		cloudwatch.Alarm_Dimension{
			Name:  "LoadBalancer",
			Value: GetAtt{Resource: "WebApiLoadBalancer", Attribute: "LoadBalancerFullName"},
		},
	},
	Period:             deploy.LatencyPeriodSeconds,
	EvaluationPeriods:  deploy.LatencyEvaluationPeriods,
	DatapointsToAlarm:  deploy.LatencyDatapointsToAlarm,
	Threshold:          deploy.LatencyThresholdSeconds,
	ComparisonOperator: "GreaterThanThreshold",
	TreatMissingData:   "notBreaching",
}

// ----------------------------------------------------------------------------
// Deployment Configuration
// ----------------------------------------------------------------------------

// RollbackCircuitBreaker rolls back a deployment whose tasks never reach a
// steady state, independent of the latency alarms.
var RollbackCircuitBreaker = ecs.Service_DeploymentCircuitBreaker{
	Enable:   true,
	Rollback: true,
}

// OneboxDeploymentAlarms binds the onebox rollout to its latency alarm.
var OneboxDeploymentAlarms = ecs.Service_DeploymentAlarms{
	AlarmNames: []any{deploy.OneboxLatencyAlarmName},
	Enable:     true,
	Rollback:   true,
}

// FleetDeploymentAlarms binds the fleet rollout to its latency alarm.
var FleetDeploymentAlarms = ecs.Service_DeploymentAlarms{
	AlarmNames: []any{deploy.FleetLatencyAlarmName},
	Enable:     true,
	Rollback:   true,
}

// OneboxDeploymentConfig keeps the full pool healthy while new tasks roll in.
var OneboxDeploymentConfig = ecs.Service_DeploymentConfiguration{
	MaximumPercent:           200,
	MinimumHealthyPercent:    100,
	DeploymentCircuitBreaker: RollbackCircuitBreaker,
	Alarms:                   OneboxDeploymentAlarms,
}

// FleetDeploymentConfig keeps the full pool healthy while new tasks roll in.
var FleetDeploymentConfig = ecs.Service_DeploymentConfiguration{
	MaximumPercent:           200,
	MinimumHealthyPercent:    100,
	DeploymentCircuitBreaker: RollbackCircuitBreaker,
	Alarms:                   FleetDeploymentAlarms,
}
