package outcome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	v, ok := Valid(42.5).Get()
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)

	assert.False(t, Undefined().Defined())
	assert.False(t, Value{}.Defined())
	assert.Equal(t, -1.0, Undefined().Or(-1))
	assert.Equal(t, 0.0, Valid(0).Or(-1))
	assert.Equal(t, "undefined", Undefined().String())
}

func TestJSON(t *testing.T) {
	type wrap struct {
		Load Value `json:"load"`
	}

	b, err := json.Marshal(wrap{Load: Undefined()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"load":null}`, string(b))

	b, err = json.Marshal(wrap{Load: Valid(87.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"load":87.5}`, string(b))

	var w wrap
	require.NoError(t, json.Unmarshal([]byte(`{"load":12}`), &w))
	assert.Equal(t, Valid(12), w.Load)
	require.NoError(t, json.Unmarshal([]byte(`{"load":null}`), &w))
	assert.False(t, w.Load.Defined())
}
