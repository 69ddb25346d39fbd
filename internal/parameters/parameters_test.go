package parameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("ab, max_depth=2,max_time=1.5s,,eval=single,expr=a=b")
	assert.Equal(t, Params{
		"ab":        "",
		"max_depth": "2",
		"max_time":  "1.5s",
		"eval":      "single",
		"expr":      "a=b",
	}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("mcts,max_simulations=300,c=1.41,max_time=2s,scan_win_in_1=false,name=hard")

	isMCTS, err := GetParamOr(params, "mcts", false)
	require.NoError(t, err)
	assert.True(t, isMCTS)
	isAB, err := GetParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.False(t, isAB)

	sims, err := GetParamOr(params, "max_simulations", 10)
	require.NoError(t, err)
	assert.Equal(t, 300, sims)

	c, err := GetParamOr(params, "c", float32(1))
	require.NoError(t, err)
	assert.InDelta(t, 1.41, c, 1e-6)

	c64, err := GetParamOr(params, "c", 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.41, c64, 1e-9)

	maxTime, err := GetParamOr(params, "max_time", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, maxTime)

	scan, err := GetParamOr(params, "scan_win_in_1", true)
	require.NoError(t, err)
	assert.False(t, scan)

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "hard", name)

	// Defaults.
	depth, err := GetParamOr(params, "max_depth", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	// Parsing errors.
	bad := NewFromConfigString("max_depth=two,max_time=3,iterative=maybe")
	_, err = GetParamOr(bad, "max_depth", 1)
	assert.Error(t, err)
	_, err = GetParamOr(bad, "max_time", time.Second)
	assert.Error(t, err)
	_, err = GetParamOr(bad, "iterative", false)
	assert.Error(t, err)
}

func TestPopParamOrAndCheckAllConsumed(t *testing.T) {
	params := NewFromConfigString("ab,max_depth=4,typo=1,other")
	depth, err := PopParamOr(params, "max_depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, depth)
	_, err = PopParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.NotContains(t, params, "max_depth")

	err = CheckAllConsumed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"other", "typo"`)

	delete(params, "typo")
	delete(params, "other")
	assert.NoError(t, CheckAllConsumed(params))
}
