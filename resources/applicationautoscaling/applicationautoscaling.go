// Package applicationautoscaling provides CloudFormation resource types for
// Application Auto Scaling.
package applicationautoscaling

// ScalableTarget represents an AWS::ApplicationAutoScaling::ScalableTarget resource.
type ScalableTarget struct {
	MinCapacity       int
	MaxCapacity       int
	ResourceId        any
	RoleARN           any
	ScalableDimension string
	ServiceNamespace  string
}

// ResourceType returns the CloudFormation type.
func (ScalableTarget) ResourceType() string {
	return "AWS::ApplicationAutoScaling::ScalableTarget"
}

// ScalingPolicy represents an AWS::ApplicationAutoScaling::ScalingPolicy resource.
type ScalingPolicy struct {
	PolicyName                               any
	PolicyType                               string
	ScalingTargetId                          any
	TargetTrackingScalingPolicyConfiguration any
}

// ResourceType returns the CloudFormation type.
func (ScalingPolicy) ResourceType() string {
	return "AWS::ApplicationAutoScaling::ScalingPolicy"
}

// ScalingPolicy_TargetTrackingScalingPolicyConfiguration holds a metric at a
// target value.
type ScalingPolicy_TargetTrackingScalingPolicyConfiguration struct {
	PredefinedMetricSpecification any
	TargetValue                   float64
	ScaleInCooldown               int
	ScaleOutCooldown              int
}

// ScalingPolicy_PredefinedMetricSpecification names a predefined scaling metric.
type ScalingPolicy_PredefinedMetricSpecification struct {
	PredefinedMetricType string
}
