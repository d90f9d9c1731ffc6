package dictschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayItemIssuesKeyedByIndex(t *testing.T) {
	sch := NewSchema(NewArrayParams(NewSchema(&IntegerParams{})))
	_, err := sch.Validate([]any{1, "2", 3})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[int]any{1: "must be of 'integer' type"}, ve.Issues())
	assert.Len(t, ve.Items, 1)
	assert.Equal(t, "/1", ve.Items[1].InstanceLocation)
}

func TestArrayNormalizesItems(t *testing.T) {
	sch := NewSchema(NewArrayParams(NewSchema(&IntegerParams{})))
	got, err := New(WithStrictMode(false)).Validate([]any{1, "2", 3.0}, sch)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)
}

func TestArrayLength(t *testing.T) {
	p := NewArrayParams(NewSchema(&IntegerParams{}))
	p.MinLength, p.MaxLength = 1, 2
	sch := NewSchema(p)

	_, err := sch.Validate([]any{})
	assert.Equal(t, "min length is '1'", issuesOf(t, err))

	// length fails the whole array before items are visited
	_, err = sch.Validate([]any{"a", "b", "c"})
	assert.Equal(t, "max length is '2'", issuesOf(t, err))
}

func TestArrayAllowed(t *testing.T) {
	p := NewArrayParams(nil)
	p.Allowed = []any{"a", "b", int64(1)}
	sch := NewSchema(p)

	got, err := sch.Validate([]any{"a", 1.0, "a"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", 1.0, "a"}, got)

	_, err = sch.Validate([]any{"c", "a", 2, "c", true})
	assert.Equal(t, "unallowed values ['c', 2, true]", issuesOf(t, err))
}

func TestArrayBadType(t *testing.T) {
	sch := NewSchema(NewArrayParams(nil))
	for _, v := range []any{"abc", map[string]any{}, 1, []string{"a"}} {
		_, err := sch.Validate(v)
		assert.Equal(t, "must be of 'list' type", issuesOf(t, err))
	}
}

func TestArrayOfObjects(t *testing.T) {
	sch := NewSchema(NewArrayParams(objectSchema(prop("a", NewSchema(NewStringParams())))))
	_, err := sch.Validate([]any{
		map[string]any{"a": "x"},
		map[string]any{},
		map[string]any{"a": "y", "b": 1},
	})
	assert.Equal(t, map[int]any{
		1: map[string]any{"a": "required field"},
		2: map[string]any{"b": "unknown field"},
	}, issuesOf(t, err))
}
