// Package logs provides CloudFormation resource types for Amazon CloudWatch Logs.
package logs

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// LogGroup represents an AWS::Logs::LogGroup resource.
type LogGroup struct {
	LogGroupName    any
	RetentionInDays int

	// Arn is the GetAtt attribute for the log group ARN.
	Arn stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
