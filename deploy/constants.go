// Package deploy holds the rollout policy for the web-api delivery system:
// traffic weights, capacity bounds, latency-alarm tuning, and runtime image
// selection. The declaration packages (service, toolchain) read from here so
// the policy lives in exactly one place.
package deploy

// Application identity.
const (
	// AppName names the application across stacks, services and alarms.
	AppName = "web-api"

	// ContainerName is the container name inside the task definition and the
	// "name" field of the image-definitions artifact.
	ContainerName = AppName

	// ContainerPort is the port the application listens on.
	ContainerPort = 80
)

// Stage names. The onebox stage is a permanent small canary pool; the fleet
// stage carries production traffic.
const (
	OneboxServiceName = AppName + "-onebox"
	FleetServiceName  = AppName + "-fleet"

	OneboxLatencyAlarmName = OneboxServiceName + "-target-response-time"
	FleetLatencyAlarmName  = FleetServiceName + "-target-response-time"
)

// Traffic split. The listener forwards a fixed 1:99 ratio so every deployment
// is continuously canaried on roughly one percent of requests.
const (
	OneboxWeight = 1
	FleetWeight  = 99
)

// Capacity bounds per stage.
const (
	OneboxDesiredCount = 3
	OneboxMinCapacity  = 3
	OneboxMaxCapacity  = 10

	FleetDesiredCount = 10
	FleetMinCapacity  = 10
	FleetMaxCapacity  = 1000

	// CPUTargetUtilizationPercent is the target-tracking setpoint for both stages.
	CPUTargetUtilizationPercent = 75
)

// Task sizing.
const (
	TaskCpu    = "512"
	TaskMemory = "2048"
)

// Latency alarm tuning. The statistic is a trimmed mean over the slowest
// decile, so the alarm reacts to tail latency rather than the median.
const (
	LatencyStatistic         = "TM(90%:100%)"
	LatencyPeriodSeconds     = 60
	LatencyThresholdSeconds  = 3
	LatencyEvaluationPeriods = 4
	LatencyDatapointsToAlarm = 3
)

// Runtime image selection.
const (
	// BootstrapImage seeds production stacks before the pipeline has
	// published a real application image.
	BootstrapImage = "nginx:1.23.3"

	// RuntimeRepositoryName is the ECR repository that receives locally
	// built images for non-production stacks.
	RuntimeRepositoryName = AppName + "-runtime"
)

// Toolchain identity.
const (
	PipelineName         = AppName + "-delivery"
	SourceRepositoryName = AppName
	SourceBranch         = "main"

	// ProdStackName is the service stack the pipeline deploys.
	ProdStackName = AppName + "-prod"

	// ProdClusterName matches the cluster name the prod service stack creates.
	ProdClusterName = AppName + "-prod"

	// ImageDefinitionsPath is where the imagedef command writes the ECS
	// deploy artifact within the build workspace.
	ImageDefinitionsPath = "ecs_deployment/imagedefinitions.json"
)
