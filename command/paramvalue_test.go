package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamValueAsInt(t *testing.T) {
	v, err := NewParamValue("42").AsInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = NewParamValue("42abc").AsInt()
	assert.Error(t, err)
}

func TestParamValueAsDouble(t *testing.T) {
	v, err := NewParamValue("3.14").AsDouble()
	assert.NoError(t, err)
	assert.InDelta(t, 3.14, v, 0.0001)

	_, err = NewParamValue("not-a-double").AsDouble()
	assert.Error(t, err)
}

func TestParamValueAsBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "yes", "YES", "1"} {
		v, err := NewParamValue(s).AsBool()
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"false", "FALSE", "no", "NO", "0"} {
		v, err := NewParamValue(s).AsBool()
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := NewParamValue("maybe").AsBool()
	assert.Error(t, err)
}

func TestParamValueAsString(t *testing.T) {
	assert.Equal(t, "hello world", NewParamValue("hello world").AsString())
}
