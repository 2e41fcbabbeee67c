// Package iam provides CloudFormation resource types for AWS IAM.
package iam

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// Role represents an AWS::IAM::Role resource.
type Role struct {
	RoleName                 any
	Path                     string
	AssumeRolePolicyDocument any
	ManagedPolicyArns        []any
	Policies                 []any
	Tags                     []any

	// Arn is the GetAtt attribute for the role ARN.
	Arn stagewire.AttrRef
	// RoleId is the GetAtt attribute for the stable role ID.
	RoleId stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a Role.
type Role_Policy struct {
	PolicyName     string
	PolicyDocument any
}
