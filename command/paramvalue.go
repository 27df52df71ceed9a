package command

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidParam is wrapped into the error returned by the typed
// ParamValue accessors when the raw string does not parse cleanly as the
// requested type.
var ErrInvalidParam = errors.New("command: invalid param")

// ParamValue is an opaque carrier of a raw string with typed accessors.
type ParamValue struct {
	raw string
}

// NewParamValue wraps a raw string into a ParamValue.
func NewParamValue(raw string) ParamValue { return ParamValue{raw: raw} }

// Raw returns the underlying raw string.
func (v ParamValue) Raw() string { return v.raw }

// AsInt parses the raw value as a base-10 integer. The whole string must
// parse cleanly.
func (v ParamValue) AsInt() (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v.raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidParam, "%q is not an integer", v.raw)
	}
	return n, nil
}

// AsDouble parses the raw value as a float. The whole string must parse
// cleanly.
func (v ParamValue) AsDouble() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidParam, "%q is not a double", v.raw)
	}
	return f, nil
}

// boolLiterals maps the accepted case-insensitive boolean literals.
var boolLiterals = map[string]bool{
	"true": true, "yes": true, "1": true,
	"false": false, "no": false, "0": false,
}

// AsBool parses the raw value as a boolean. Accepts
// {true,false,yes,no,1,0} case-insensitively.
func (v ParamValue) AsBool() (bool, error) {
	b, ok := boolLiterals[strings.ToLower(strings.TrimSpace(v.raw))]
	if !ok {
		return false, errors.Wrapf(ErrInvalidParam, "%q is not a bool", v.raw)
	}
	return b, nil
}

// AsString returns the raw value verbatim; strings are never validated.
func (v ParamValue) AsString() string { return v.raw }
