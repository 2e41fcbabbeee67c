// Package registry resolves direct declaration references during synthesis.
//
// Declaration packages assign resources and parameters directly to fields:
//
//	var HttpListener = elasticloadbalancingv2.Listener{
//	    LoadBalancerArn: WebApiLoadBalancer,
//	}
//
// At that point the field holds a copy of the referenced value, not its name.
// The registry maps each registered value back to its logical name by
// signature, so serialization can substitute {"Ref": "WebApiLoadBalancer"}.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/intrinsics"
)

// Provider supplies one stack's declarations, keyed by logical name. The
// maps are built by each declaration package's registry file.
type Provider struct {
	Declarations map[string]any
	Parameters   map[string]*intrinsics.Parameter
	Outputs      map[string]intrinsics.Output
}

// Registry maps declaration values to logical names.
type Registry struct {
	provider   Provider
	signatures map[string]string // value signature -> logical name
}

// New builds a registry from a provider. Two declarations with identical
// content cannot be told apart when referenced by value, so duplicate
// signatures are an error; differentiate the declarations with a tag.
func New(p Provider) (*Registry, error) {
	r := &Registry{
		provider:   p,
		signatures: make(map[string]string),
	}

	names := make([]string, 0, len(p.Declarations))
	for name := range p.Declarations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sig, err := resourceSignature(p.Declarations[name])
		if err != nil {
			return nil, fmt.Errorf("registering %s: %w", name, err)
		}
		if prev, dup := r.signatures[sig]; dup {
			return nil, fmt.Errorf("declarations %s and %s are identical; references to them are ambiguous", prev, name)
		}
		r.signatures[sig] = name
	}

	paramNames := make([]string, 0, len(p.Parameters))
	for name := range p.Parameters {
		paramNames = append(paramNames, name)
	}
	sort.Strings(paramNames)

	for _, name := range paramNames {
		param := p.Parameters[name]
		param.SetName(name)
		sig, err := parameterSignature(*param)
		if err != nil {
			return nil, fmt.Errorf("registering parameter %s: %w", name, err)
		}
		if prev, dup := r.signatures[sig]; dup {
			return nil, fmt.Errorf("parameters %s and %s are identical; references to them are ambiguous", prev, name)
		}
		r.signatures[sig] = name
	}

	return r, nil
}

// Resolve substitutes a registered declaration value with a Ref to its
// logical name. Values that are not registered declarations pass through.
func (r *Registry) Resolve(v any) (any, bool) {
	switch val := v.(type) {
	case stagewire.Resource:
		sig, err := resourceSignature(val)
		if err != nil {
			return nil, false
		}
		if name, ok := r.signatures[sig]; ok {
			return intrinsics.Ref{Name: name}, true
		}
	case intrinsics.Parameter:
		sig, err := parameterSignature(val)
		if err != nil {
			return nil, false
		}
		if name, ok := r.signatures[sig]; ok {
			return intrinsics.Ref{Name: name}, true
		}
	case *intrinsics.Parameter:
		return r.Resolve(*val)
	}
	return nil, false
}

// Names returns the logical names of all registered resources, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.provider.Declarations))
	for name := range r.provider.Declarations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the declaration value for a logical name.
func (r *Registry) Lookup(name string) (any, bool) {
	v, ok := r.provider.Declarations[name]
	return v, ok
}

// Parameter returns the parameter declaration for a logical name.
func (r *Registry) Parameter(name string) (*intrinsics.Parameter, bool) {
	p, ok := r.provider.Parameters[name]
	return p, ok
}

// Output returns the output declaration for a logical name.
func (r *Registry) Output(name string) (intrinsics.Output, bool) {
	o, ok := r.provider.Outputs[name]
	return o, ok
}

func resourceSignature(v any) (string, error) {
	res, ok := v.(stagewire.Resource)
	if !ok {
		return "", fmt.Errorf("%T does not declare a resource type", v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return res.ResourceType() + "|" + string(data), nil
}

func parameterSignature(p intrinsics.Parameter) (string, error) {
	data, err := json.Marshal(p.ToDefinition())
	if err != nil {
		return "", err
	}
	return "Parameter|" + string(data), nil
}
