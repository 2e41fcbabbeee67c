// Package cloudwatch provides CloudFormation resource types for Amazon CloudWatch.
package cloudwatch

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Alarm represents an AWS::CloudWatch::Alarm resource.
type Alarm struct {
	AlarmName          any
	AlarmDescription   string
	Namespace          string
	MetricName         string
	Dimensions         []any
	Statistic          string
	ExtendedStatistic  string
	Period             int
	EvaluationPeriods  int
	DatapointsToAlarm  int
	Threshold          float64
	ComparisonOperator string
	TreatMissingData   string

	// Arn is the GetAtt attribute for the alarm ARN.
	Arn stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Alarm) ResourceType() string { return "AWS::CloudWatch::Alarm" }

// Alarm_Dimension is a metric dimension.
type Alarm_Dimension struct {
	Name  string
	Value any
}
