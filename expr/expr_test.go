package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCompile_ParseError(t *testing.T) {
	_, err := Compile("cur_config_index ==")
	require.Error(t, err)
}

func TestEvalBool(t *testing.T) {
	vars := map[string]cty.Value{
		"cur_config_index": cty.NumberIntVal(1),
		"lhb":              cty.StringVal("on"),
		"debug_enabled":    cty.True,
		"bgm_volume":       cty.NumberIntVal(40),
	}

	testCases := []struct {
		name string
		src  string
		want bool
	}{
		{"equality true", "cur_config_index == 1", true},
		{"equality false", "cur_config_index == 0", false},
		{"inequality", "cur_config_index != 0", true},
		{"string equality", `lhb == "on"`, true},
		{"string inequality", `lhb != "on"`, false},
		{"bare boolean key", "debug_enabled", true},
		{"numeric comparison", "bgm_volume > 20", true},
		{"arithmetic", "bgm_volume + 10 == 50", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Compile(tc.src)
			require.NoError(t, err)
			got, err := c.EvalBool(vars)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEval_UnknownKey(t *testing.T) {
	c, err := Compile("cur_config_index == 0")
	require.NoError(t, err)

	// The key exists in no snapshot, so the conditional must resolve false
	// rather than substituting a zero default.
	got, evalErr := c.EvalBool(map[string]cty.Value{})
	assert.False(t, got)

	var unknown *UnknownKeyError
	require.ErrorAs(t, evalErr, &unknown)
	assert.Equal(t, "cur_config_index", unknown.Key)
}

func TestEval_TypeMismatch(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		vars map[string]cty.Value
	}{
		{
			name: "string compared with number",
			src:  "lhb > 3",
			vars: map[string]cty.Value{"lhb": cty.StringVal("on")},
		},
		{
			name: "string as bare condition",
			src:  "lhb",
			vars: map[string]cty.Value{"lhb": cty.StringVal("on")},
		},
		{
			name: "number as bare condition",
			src:  "bgm_volume",
			vars: map[string]cty.Value{"bgm_volume": cty.NumberIntVal(3)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Compile(tc.src)
			require.NoError(t, err)

			got, evalErr := c.EvalBool(tc.vars)
			assert.False(t, got)

			var mismatch *TypeMismatchError
			require.ErrorAs(t, evalErr, &mismatch)
		})
	}
}

func TestEvalDisplay(t *testing.T) {
	c, err := Compile("bgm_volume")
	require.NoError(t, err)

	s, err := c.EvalDisplay(map[string]cty.Value{"bgm_volume": cty.NumberIntVal(40)})
	require.NoError(t, err)
	assert.Equal(t, "40", s)

	// Failure renders the empty placeholder, never an error string.
	s, evalErr := c.EvalDisplay(map[string]cty.Value{})
	assert.Equal(t, "", s)
	var unknown *UnknownKeyError
	require.ErrorAs(t, evalErr, &unknown)
}

func TestDisplay(t *testing.T) {
	testCases := []struct {
		name string
		val  cty.Value
		want string
	}{
		{"whole number", cty.NumberIntVal(40), "40"},
		{"fractional number", cty.NumberFloatVal(42.5), "42.5"},
		{"string", cty.StringVal("on"), "on"},
		{"bool", cty.True, "true"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Display(tc.val)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("null has no display form", func(t *testing.T) {
		got, err := Display(cty.NilVal)
		assert.Equal(t, "", got)
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}

func TestKeys(t *testing.T) {
	c, err := Compile("bgm_volume > 10 && bgm_volume < 90 && lhb == \"on\"")
	require.NoError(t, err)
	assert.Equal(t, []string{"bgm_volume", "lhb"}, c.Keys())
}

func TestEval_NeverMutates(t *testing.T) {
	c, err := Compile("bgm_volume == 40")
	require.NoError(t, err)

	vars := map[string]cty.Value{"bgm_volume": cty.NumberIntVal(40)}
	_, err = c.Eval(vars)
	require.NoError(t, err)

	require.Len(t, vars, 1)
	assert.True(t, vars["bgm_volume"].RawEquals(cty.NumberIntVal(40)))
}
