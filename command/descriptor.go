// Package command holds the schema a voice command is declared with, the
// registry consumers register handlers into, and the dispatcher that
// validates parameters and invokes a handler.
package command

// ParamType is the tagged variant of the kinds of values a parameter can
// carry.
type ParamType int

const (
	// ParamString is a free-form string parameter.
	ParamString ParamType = iota
	// ParamInteger is a base-10 integer parameter.
	ParamInteger
	// ParamDouble is a floating point parameter.
	ParamDouble
	// ParamBool is a boolean parameter.
	ParamBool
	// ParamEnum restricts the parameter to one of EnumValues.
	ParamEnum
)

// String implements fmt.Stringer.
func (t ParamType) String() string {
	switch t {
	case ParamString:
		return "string"
	case ParamInteger:
		return "integer"
	case ParamDouble:
		return "double"
	case ParamBool:
		return "bool"
	case ParamEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ParamDescriptor is the schema of a single command parameter.
//
// MinValue and MaxValue are pointers so that "unset" is distinguishable
// from a zero bound; only meaningful when Type is ParamInteger or
// ParamDouble.
type ParamDescriptor struct {
	Name         string
	Type         ParamType
	Description  string
	Required     bool
	DefaultValue string
	EnumValues   []string
	MinValue     *float64
	MaxValue     *float64
}

// Float64Ptr is a small helper for constructing MinValue/MaxValue bounds,
// mirroring the optional-pointer helpers the teacher corpus uses
// (astiptr.Bool et al.) for fields that must distinguish "unset" from
// zero.
func Float64Ptr(v float64) *float64 { return &v }

// CommandDescriptor is the schema paired with a handler at registration
// time.
type CommandDescriptor struct {
	Name           string
	Description    string
	TriggerPhrases []string
	Parameters     []ParamDescriptor
}

// IsParameterized reports whether the command declares any parameters.
func (d CommandDescriptor) IsParameterized() bool {
	return len(d.Parameters) > 0
}

// ParamByName returns the parameter descriptor with the given name, if
// any.
func (d CommandDescriptor) ParamByName(name string) (ParamDescriptor, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDescriptor{}, false
}
