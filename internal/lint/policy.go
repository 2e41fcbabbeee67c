// Template rules:
//
//	SW101: Listener forward weights must be exactly 1 and 99
//	SW102: Scalable targets must have sane capacity bounds
//	SW103: All ECS services must share one task definition
//	SW104: Pipeline stages must order actions after their inputs
//
// These run against the synthesized template rather than the AST because the
// declarations compute these values from shared constants; only the template
// shows the final numbers.

package lint

import (
	"fmt"
	"sort"

	stagewire "github.com/stagewire/stagewire-aws-go"
)

// AllTemplateRules returns every template rule.
func AllTemplateRules() []TemplateRule {
	return []TemplateRule{
		ForwardWeights{},
		CapacityBounds{},
		SharedTaskDefinition{},
		ActionOrdering{},
	}
}

// ForwardWeights checks that every listener splits traffic exactly 1:99.
// The onebox pool exists to canary one percent of requests; any other split
// is a misconfiguration, not a tuning choice.
type ForwardWeights struct{}

func (r ForwardWeights) ID() string { return "SW101" }
func (r ForwardWeights) Description() string {
	return "Listener forward weights must be exactly 1 and 99"
}

func (r ForwardWeights) CheckTemplate(t *stagewire.Template) []Issue {
	var issues []Issue

	for name, res := range t.Resources {
		if res.Type != "AWS::ElasticLoadBalancingV2::Listener" {
			continue
		}

		var weights []int
		for _, action := range asSlice(res.Properties["DefaultActions"]) {
			actionMap, ok := action.(map[string]any)
			if !ok {
				continue
			}
			forward, ok := actionMap["ForwardConfig"].(map[string]any)
			if !ok {
				continue
			}
			for _, tuple := range asSlice(forward["TargetGroups"]) {
				tupleMap, ok := tuple.(map[string]any)
				if !ok {
					continue
				}
				if w, ok := asInt(tupleMap["Weight"]); ok {
					weights = append(weights, w)
				}
			}
		}

		sort.Ints(weights)
		if len(weights) != 2 || weights[0] != 1 || weights[1] != 99 {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Message:  fmt.Sprintf("Listener %s forwards with weights %v; expected exactly [1 99]", name, weights),
				Severity: SeverityError,
			})
		}
	}

	return issues
}

// CapacityBounds checks that scalable targets declare usable bounds.
type CapacityBounds struct{}

func (r CapacityBounds) ID() string { return "SW102" }
func (r CapacityBounds) Description() string {
	return "Scalable targets must have MinCapacity >= 1 and MinCapacity <= MaxCapacity"
}

func (r CapacityBounds) CheckTemplate(t *stagewire.Template) []Issue {
	var issues []Issue

	for name, res := range t.Resources {
		if res.Type != "AWS::ApplicationAutoScaling::ScalableTarget" {
			continue
		}

		min, _ := asInt(res.Properties["MinCapacity"])
		max, _ := asInt(res.Properties["MaxCapacity"])

		if min < 1 {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Message:  fmt.Sprintf("ScalableTarget %s has MinCapacity %d; a pool must keep at least one task", name, min),
				Severity: SeverityError,
			})
		}
		if min > max {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Message:  fmt.Sprintf("ScalableTarget %s has MinCapacity %d above MaxCapacity %d", name, min, max),
				Severity: SeverityError,
			})
		}
	}

	return issues
}

// SharedTaskDefinition checks that every ECS service runs the same task
// definition. Separate definitions per stage would let the canary diverge
// from the pool it is supposed to predict.
type SharedTaskDefinition struct{}

func (r SharedTaskDefinition) ID() string { return "SW103" }
func (r SharedTaskDefinition) Description() string {
	return "All ECS services must reference one shared task definition"
}

func (r SharedTaskDefinition) CheckTemplate(t *stagewire.Template) []Issue {
	refs := make(map[string][]string) // task definition ref -> service names

	for name, res := range t.Resources {
		if res.Type != "AWS::ECS::Service" {
			continue
		}

		ref := "<none>"
		if td, ok := res.Properties["TaskDefinition"].(map[string]any); ok {
			if r, ok := td["Ref"].(string); ok {
				ref = r
			}
		}
		refs[ref] = append(refs[ref], name)
	}

	if len(refs) <= 1 {
		return nil
	}

	var parts []string
	for ref, services := range refs {
		sort.Strings(services)
		parts = append(parts, fmt.Sprintf("%v -> %s", services, ref))
	}
	sort.Strings(parts)

	return []Issue{{
		Rule:     r.ID(),
		Message:  fmt.Sprintf("ECS services reference different task definitions: %v", parts),
		Severity: SeverityError,
	}}
}

// ActionOrdering checks pipeline stages for ordering mistakes: ECS deploy
// actions sharing a run order would promote both pools at once, and an
// action consuming an artifact must run after the action producing it.
type ActionOrdering struct{}

func (r ActionOrdering) ID() string { return "SW104" }
func (r ActionOrdering) Description() string {
	return "Pipeline actions must run after their inputs, one ECS deploy at a time"
}

func (r ActionOrdering) CheckTemplate(t *stagewire.Template) []Issue {
	var issues []Issue

	for name, res := range t.Resources {
		if res.Type != "AWS::CodePipeline::Pipeline" {
			continue
		}

		for _, stage := range asSlice(res.Properties["Stages"]) {
			stageMap, ok := stage.(map[string]any)
			if !ok {
				continue
			}
			stageName, _ := stageMap["Name"].(string)

			type actionInfo struct {
				name     string
				runOrder int
				provider string
				inputs   []string
				outputs  []string
			}

			var actions []actionInfo
			for _, a := range asSlice(stageMap["Actions"]) {
				actionMap, ok := a.(map[string]any)
				if !ok {
					continue
				}
				info := actionInfo{runOrder: 1}
				info.name, _ = actionMap["Name"].(string)
				if ro, ok := asInt(actionMap["RunOrder"]); ok && ro > 0 {
					info.runOrder = ro
				}
				if typeID, ok := actionMap["ActionTypeId"].(map[string]any); ok {
					info.provider, _ = typeID["Provider"].(string)
				}
				info.inputs = artifactNames(actionMap["InputArtifacts"])
				info.outputs = artifactNames(actionMap["OutputArtifacts"])
				actions = append(actions, info)
			}

			// ECS deploy actions must not share a run order.
			ecsOrders := make(map[int]string)
			for _, a := range actions {
				if a.provider != "ECS" {
					continue
				}
				if prev, dup := ecsOrders[a.runOrder]; dup {
					issues = append(issues, Issue{
						Rule:     r.ID(),
						Message:  fmt.Sprintf("Pipeline %s stage %s runs ECS deploys %s and %s concurrently at run order %d", name, stageName, prev, a.name, a.runOrder),
						Severity: SeverityError,
					})
				} else {
					ecsOrders[a.runOrder] = a.name
				}
			}

			// An artifact's producer must run before its consumers.
			producers := make(map[string]actionInfo)
			for _, a := range actions {
				for _, out := range a.outputs {
					producers[out] = a
				}
			}
			for _, consumer := range actions {
				for _, in := range consumer.inputs {
					producer, ok := producers[in]
					if !ok {
						continue
					}
					if producer.runOrder >= consumer.runOrder {
						issues = append(issues, Issue{
							Rule:     r.ID(),
							Message:  fmt.Sprintf("Pipeline %s stage %s: action %s consumes %q before %s produces it", name, stageName, consumer.name, in, producer.name),
							Severity: SeverityError,
						})
					}
				}
			}
		}
	}

	return issues
}

func artifactNames(v any) []string {
	var names []string
	for _, a := range asSlice(v) {
		if m, ok := a.(map[string]any); ok {
			if name, ok := m["Name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// asSlice returns the value as a slice, or nil.
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asInt converts numeric values that may arrive as int64 from serialization
// or float64 from a JSON round trip.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
