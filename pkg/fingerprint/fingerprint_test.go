package fingerprint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromJSONIgnoresKeyOrder(t *testing.T) {
	a, err := GenerateFromJSON(json.RawMessage(`{"name":"Jake Doe","position":"OF","season":2024}`))
	require.NoError(t, err)
	b, err := GenerateFromJSON(json.RawMessage(`{"season":2024,"position":"OF","name":"Jake Doe"}`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateFromJSONDetectsValueChange(t *testing.T) {
	a, err := GenerateFromJSON(json.RawMessage(`{"name":"Jake Doe","position":"OF"}`))
	require.NoError(t, err)
	b, err := GenerateFromJSON(json.RawMessage(`{"name":"Jake Doe","position":"3B"}`))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateFromJSONNestedStructures(t *testing.T) {
	a, err := GenerateFromJSON(json.RawMessage(`{"name":"Jake Doe","stats":{"hr":12,"avg":0.31},"awards":["a","b"]}`))
	require.NoError(t, err)
	b, err := GenerateFromJSON(json.RawMessage(`{"awards":["a","b"],"stats":{"avg":0.31,"hr":12},"name":"Jake Doe"}`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateFromJSONRejectsNonObject(t *testing.T) {
	_, err := GenerateFromJSON(json.RawMessage(`[1,2,3]`))
	require.Error(t, err)
}
