package pkgjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "name": "@dsui/ui",
  "version": "1.4.0",
  "scripts": {
    "build": "tsc && vite build"
  },
  "exports": {
    "./old": "./old.js"
  },
  "license": "MIT"
}
`

func TestParseKeepsOrder(t *testing.T) {
	obj, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "version", "scripts", "exports", "license"}, obj.Keys())
	assert.Equal(t, "@dsui/ui", obj.GetString("name"))
	assert.Equal(t, "", obj.GetString("scripts"))
	assert.Equal(t, "", obj.GetString("missing"))
}

func TestRoundTripIsStable(t *testing.T) {
	obj, err := Parse([]byte(sample))
	require.NoError(t, err)
	out, err := obj.Encode()
	require.NoError(t, err)
	assert.Equal(t, sample, string(out))
}

func TestSetReplacesInPlaceAndAppends(t *testing.T) {
	obj, err := Parse([]byte(sample))
	require.NoError(t, err)

	exports := New()
	require.NoError(t, exports.Set("./button", map[string]string{"default": "./dist/button.js"}))
	require.NoError(t, obj.Set("exports", exports))
	require.NoError(t, obj.Set("sideEffects", false))

	assert.Equal(t, []string{"name", "version", "scripts", "exports", "license", "sideEffects"}, obj.Keys())

	out, err := obj.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"build": "tsc && vite build"`)
	assert.Contains(t, string(out), "\"exports\": {\n    \"./button\": {\n      \"default\": \"./dist/button.js\"\n    }\n  },")
	assert.NotContains(t, string(out), "./old")
	assert.Contains(t, string(out), "\"sideEffects\": false\n}\n")
}

func TestDelete(t *testing.T) {
	obj, err := Parse([]byte(`{"a":1,"b":2,"c":3}`))
	require.NoError(t, err)
	obj.Delete("b")
	obj.Delete("missing")
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	_, ok := obj.Get("b")
	assert.False(t, ok)
}

func TestParseRejectsNonObject(t *testing.T) {
	_, err := Parse([]byte(`["not", "an", "object"]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")

	_, err = Parse([]byte(`{"a": `))
	require.Error(t, err)
}

func TestDuplicateKeysKeepFirstPosition(t *testing.T) {
	obj, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	raw, _ := obj.Get("a")
	assert.Equal(t, "3", string(raw))
}
