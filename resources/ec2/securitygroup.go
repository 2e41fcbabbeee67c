package ec2

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
type SecurityGroup struct {
	GroupDescription     string
	GroupName            any
	VpcId                any
	SecurityGroupIngress []any
	SecurityGroupEgress  []any
	Tags                 []any

	// GroupId is the GetAtt attribute for the security group ID.
	GroupId stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is an ingress rule for a SecurityGroup.
type SecurityGroup_Ingress struct {
	Description           string
	IpProtocol            string
	FromPort              int
	ToPort                int
	CidrIp                string
	SourceSecurityGroupId any
}

// SecurityGroup_Egress is an egress rule for a SecurityGroup.
type SecurityGroup_Egress struct {
	Description string
	IpProtocol  string
	FromPort    int
	ToPort      int
	CidrIp      string
}
