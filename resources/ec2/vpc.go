// Package ec2 provides CloudFormation resource types for Amazon EC2 networking.
//
// Reference-capable properties are typed any so declarations can reference
// other resources directly:
//
//	var PublicSubnetA = ec2.Subnet{
//	    VpcId:     VPC,
//	    CidrBlock: "10.0.0.0/24",
//	}
package ec2

import (
	stagewire "github.com/stagewire/stagewire-aws-go"
)

// VPC represents an AWS::EC2::VPC resource.
type VPC struct {
	CidrBlock          string
	EnableDnsHostnames bool
	EnableDnsSupport   bool
	InstanceTenancy    string
	Tags               []any
}

// ResourceType returns the CloudFormation type.
func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

// InternetGateway represents an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []any
}

// ResourceType returns the CloudFormation type.
func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment represents an AWS::EC2::VPCGatewayAttachment resource.
type VPCGatewayAttachment struct {
	InternetGatewayId any
	VpcId             any
}

// ResourceType returns the CloudFormation type.
func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// Subnet represents an AWS::EC2::Subnet resource.
type Subnet struct {
	VpcId               any
	CidrBlock           string
	AvailabilityZone    any
	MapPublicIpOnLaunch bool
	Tags                []any
}

// ResourceType returns the CloudFormation type.
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// EIP represents an AWS::EC2::EIP resource.
type EIP struct {
	Domain string
	Tags   []any

	// AllocationId is the GetAtt attribute for the allocation ID.
	AllocationId stagewire.AttrRef
}

// ResourceType returns the CloudFormation type.
func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway represents an AWS::EC2::NatGateway resource.
type NatGateway struct {
	AllocationId any
	SubnetId     any
	Tags         []any
}

// ResourceType returns the CloudFormation type.
func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }

// RouteTable represents an AWS::EC2::RouteTable resource.
type RouteTable struct {
	VpcId any
	Tags  []any
}

// ResourceType returns the CloudFormation type.
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route represents an AWS::EC2::Route resource.
type Route struct {
	RouteTableId         any
	DestinationCidrBlock string
	GatewayId            any
	NatGatewayId         any
}

// ResourceType returns the CloudFormation type.
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation represents an AWS::EC2::SubnetRouteTableAssociation resource.
type SubnetRouteTableAssociation struct {
	SubnetId     any
	RouteTableId any
}

// ResourceType returns the CloudFormation type.
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}
