package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMap_InsertionOrder(t *testing.T) {
	var m FileMap
	m.Set("App.jsx", "entry")
	m.Set("styles.css", "body {}")
	m.Set("util.js", "export {}")

	assert.Equal(t, []string{"App.jsx", "styles.css", "util.js"}, m.Names())
	assert.Equal(t, 3, m.Len())

	first, ok := m.First()
	require.True(t, ok)
	assert.Equal(t, "App.jsx", first)

	// Overwriting keeps the original position.
	m.Set("styles.css", "body { margin: 0 }")
	assert.Equal(t, []string{"App.jsx", "styles.css", "util.js"}, m.Names())
	content, _ := m.Get("styles.css")
	assert.Equal(t, "body { margin: 0 }", content)
}

func TestFileMap_JSONRoundTripPreservesOrder(t *testing.T) {
	// Key order deliberately not alphabetical.
	payload := `{"zebra.js":"z","App.jsx":"entry","a.css":".a{}"}`

	var m FileMap
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	assert.Equal(t, []string{"zebra.js", "App.jsx", "a.css"}, m.Names())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(out))

	var again FileMap
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, m.Names(), again.Names())
}

func TestFileMap_UnmarshalRejectsNonObject(t *testing.T) {
	var m FileMap
	assert.Error(t, json.Unmarshal([]byte(`["App.jsx"]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"App.jsx": 42}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`not json`), &m))
}

func TestFileMap_EmptyAndNull(t *testing.T) {
	var m FileMap
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Zero(t, m.Len())
	_, ok := m.First()
	assert.False(t, ok)
}

func TestFileMap_SpecialCharacterFilenames(t *testing.T) {
	var m FileMap
	m.Set("components/Button.test.jsx", "test")
	m.Set("weird*name?.js", "odd")

	out, err := json.Marshal(m)
	require.NoError(t, err)

	var back FileMap
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, m.Names(), back.Names())
	content, ok := back.Get("components/Button.test.jsx")
	require.True(t, ok)
	assert.Equal(t, "test", content)
}
