package command

// Context is created by the dispatcher for a single dispatch and passed
// by reference to the handler. Handlers must not retain it past the
// call.
type Context struct {
	params        map[string]ParamValue
	RawTranscript string
	Confidence    float64
}

// NewContext creates a context from a raw string-keyed param map, as
// produced by a recognition strategy or the command tester.
func NewContext(params map[string]string, rawTranscript string, confidence float64) *Context {
	c := &Context{
		params:        make(map[string]ParamValue, len(params)),
		RawTranscript: rawTranscript,
		Confidence:    confidence,
	}
	for k, v := range params {
		c.params[k] = NewParamValue(v)
	}
	return c
}

// Param returns the named parameter value, if present.
func (c *Context) Param(name string) (ParamValue, bool) {
	v, ok := c.params[name]
	return v, ok
}

// MustParam returns the named parameter value, or the zero ParamValue if
// absent. Convenience for handlers that already validated presence via
// the descriptor's Required flag.
func (c *Context) MustParam(name string) ParamValue {
	return c.params[name]
}

// setDefault injects a default value for a parameter that was absent.
// Only called by the dispatcher during default-filling, and only when
// the parameter is not already present (default injection is a no-op
// otherwise).
func (c *Context) setDefault(name, value string) {
	if _, ok := c.params[name]; ok {
		return
	}
	c.params[name] = NewParamValue(value)
}

// ParamNames returns the set of parameter names present in the context.
func (c *Context) ParamNames() []string {
	names := make([]string, 0, len(c.params))
	for k := range c.params {
		names = append(names, k)
	}
	return names
}
