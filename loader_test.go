package dictschema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	doc, err := UnmarshalJSON(strings.NewReader(`{"i": 1, "f": 1.0, "e": 1e3, "l": [2, 2.5], "s": "x", "n": null}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"i": int64(1),
		"f": 1.0,
		"e": 1000.0,
		"l": []any{int64(2), 2.5},
		"s": "x",
		"n": nil,
	}, doc)

	_, err = UnmarshalJSON(strings.NewReader(`{} {}`))
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDescriptorJSON(t *testing.T) {
	path := writeFile(t, "person.json", `{
		"type": "dict",
		"properties": {
			"name": {"type": "string", "minlength": 1},
			"age": {"type": "integer", "min": 0, "required": false}
		}
	}`)
	desc, err := LoadDescriptor(path)
	require.NoError(t, err)

	sch, err := Compile(desc)
	require.NoError(t, err)
	_, err = sch.Validate(map[string]any{"name": "x", "age": -1})
	assert.Equal(t, map[string]any{"age": "min value is '0'"}, issuesOf(t, err))
}

func TestLoadDescriptorYAML(t *testing.T) {
	path := writeFile(t, "person.yaml", `
type: dict
properties:
  name:
    type: string
  tags:
    type: list
    maxlength: 2
    schema:
      type: string
`)
	desc, err := LoadDescriptor(path)
	require.NoError(t, err)

	sch, err := Compile(desc)
	require.NoError(t, err)
	_, err = sch.Validate(map[string]any{"name": "x", "tags": []any{"a", "b", "c"}})
	assert.Equal(t, map[string]any{"tags": "max length is '2'"}, issuesOf(t, err))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	var lfe *LoadFileError
	require.ErrorAs(t, err, &lfe)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadDescriptor(writeFile(t, "list.json", `[1, 2]`))
	require.ErrorAs(t, err, &lfe)
	assert.Contains(t, err.Error(), "descriptor must be a dict")

	_, err = LoadFile(writeFile(t, "bad.json", `{"a": `))
	require.ErrorAs(t, err, &lfe)
}
