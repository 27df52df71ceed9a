package command

import "strings"

// Dispatcher validates a context's parameters against a registered
// descriptor, fills in defaults, and invokes the handler. It has no
// side effects beyond the handler's own.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher bound to a registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch looks up name in the registry, validates ctx's parameters
// against the descriptor, fills in declared defaults, and invokes the
// handler. See spec §4.5 for the exact algorithm.
func (d *Dispatcher) Dispatch(name string, ctx *Context) Result {
	descriptor, handler, ok := d.registry.Lookup(name)
	if !ok {
		return Failure
	}

	for _, p := range descriptor.Parameters {
		v, present := ctx.Param(p.Name)
		if !present {
			if p.Required {
				return InvalidParams
			}
			if p.DefaultValue != "" {
				ctx.setDefault(p.Name, p.DefaultValue)
			}
			continue
		}
		if !validateParam(p, v) {
			return InvalidParams
		}
	}

	return handler.Execute(ctx)
}

// validateParam applies the per-type validation rule from spec §4.5 to
// a present parameter value.
func validateParam(p ParamDescriptor, v ParamValue) bool {
	switch p.Type {
	case ParamInteger:
		n, err := v.AsInt()
		if err != nil {
			return false
		}
		f := float64(n)
		if p.MinValue != nil && f < *p.MinValue {
			return false
		}
		if p.MaxValue != nil && f > *p.MaxValue {
			return false
		}
		return true
	case ParamDouble:
		f, err := v.AsDouble()
		if err != nil {
			return false
		}
		if p.MinValue != nil && f < *p.MinValue {
			return false
		}
		if p.MaxValue != nil && f > *p.MaxValue {
			return false
		}
		return true
	case ParamBool:
		_, err := v.AsBool()
		return err == nil
	case ParamEnum:
		for _, ev := range p.EnumValues {
			if strings.EqualFold(ev, v.Raw()) {
				return true
			}
		}
		return false
	case ParamString:
		return true
	default:
		return true
	}
}
