package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestJSONFormatter_Fixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, fixtureSummary()))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "/data", doc.Meta.Root)
	assert.NotEmpty(t, doc.Meta.RunID)
	assert.Equal(t, 3, doc.Totals.Files)
	assert.Equal(t, int64(2148), doc.Totals.Bytes)
	assert.Equal(t, "2.1 KiB", doc.Totals.Human)
	require.Len(t, doc.Categories, 3)
	assert.Equal(t, "Documents", doc.Categories[0].Name)
	require.Len(t, doc.Unknown, 1)
	assert.Equal(t, ".unknownext", doc.Unknown[0].Extension)
	assert.Equal(t, int64(100), doc.Stats.Median)
}

func TestJSONFormatter_EmptyEmitsZeros(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, emptySummary()))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	totals := raw["totals"].(map[string]interface{})
	assert.EqualValues(t, 0, totals["files"])
	assert.Equal(t, []interface{}{}, raw["categories"])
	assert.Equal(t, []interface{}{}, raw["unknown_extensions"])
}

func TestYAMLFormatter_Fixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, fixtureSummary()))

	var doc document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "/data", doc.Meta.Root)
	assert.Equal(t, 3, doc.Totals.Files)
	require.Len(t, doc.Categories, 3)
	assert.Equal(t, "Other", doc.Categories[2].Name)
	assert.Contains(t, buf.String(), "run_id:")
}
