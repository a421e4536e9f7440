package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentValid(t *testing.T) {
	assert.True(t, IntentPolicy.Valid())
	assert.True(t, IntentRecommendation.Valid())
	assert.True(t, IntentAnalytics.Valid())
	assert.True(t, IntentRefusal.Valid())

	assert.False(t, Intent("").Valid())
	assert.False(t, Intent("banana").Valid())
	assert.False(t, Intent("Policy").Valid())
}

func TestNewAgentResponse_NonNilSlices(t *testing.T) {
	resp := NewAgentResponse(IntentRefusal)
	assert.NotNil(t, resp.Citations)
	assert.NotNil(t, resp.Sources)

	// Empty slices serialize as [], never null.
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"citations":[]`)
	assert.Contains(t, string(data), `"sources":[]`)
}
