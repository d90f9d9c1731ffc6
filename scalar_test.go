package dictschema

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scalarTest struct {
	name   string
	params Params
	strict bool
	in     any
	want   any    // normalized value when issue is empty
	issue  string // expected leaf message
}

func runScalarTests(t *testing.T, tests []scalarTest) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vd := New(WithStrictMode(test.strict))
			got, err := vd.Validate(test.in, NewSchema(test.params))
			if test.issue != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, test.issue, ve.Issues())
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestValidateString(t *testing.T) {
	minLen := NewStringParams()
	minLen.MinLength = 3
	maxLen := NewStringParams()
	maxLen.MaxLength = 2
	empty := NewStringParams()
	empty.Empty = true
	allowed := NewStringParams()
	allowed.Allowed = []string{"a", "b"}
	regex := NewStringParams()
	regex.Regex = MustPattern("a+")
	full := NewStringParams()
	full.Regex = MustPattern("a+$")

	runScalarTests(t, []scalarTest{
		{"string", NewStringParams(), true, "abc", "abc", ""},
		{"int strict", NewStringParams(), true, 123, nil, "must be of 'string' type"},
		{"int coerced", NewStringParams(), false, 123, "123", ""},
		{"float coerced", NewStringParams(), false, 1.5, "1.5", ""},
		{"integral float coerced", NewStringParams(), false, 123.0, "123.0", ""},
		{"small float coerced", NewStringParams(), false, 1.5e-7, "1.5e-07", ""},
		{"large float coerced", NewStringParams(), false, 1e21, "1e+21", ""},
		{"bool never coerced", NewStringParams(), false, true, nil, "must be of 'string' type"},
		{"list", NewStringParams(), false, []any{"a"}, nil, "must be of 'string' type"},
		{"empty", NewStringParams(), true, "", nil, "empty values not allowed"},
		{"empty allowed", empty, true, "", "", ""},
		{"minlength", minLen, true, "ab", nil, "minimum length of the string is '3' characters"},
		{"minlength counts characters", minLen, true, "héé", "héé", ""},
		{"maxlength", maxLen, true, "abc", nil, "maximum length of the string is '2' characters"},
		{"allowed", allowed, true, "b", "b", ""},
		{"unallowed", allowed, true, "c", nil, "unallowed value 'c'"},
		{"regex prefix", regex, true, "aaab", "aaab", ""},
		{"regex anchored at start", regex, true, "baaa", nil, "value does not match regex 'a+'"},
		{"regex full", full, true, "aab", nil, "value does not match regex 'a+$'"},
	})
}

func TestValidateInteger(t *testing.T) {
	bounded := &IntegerParams{Min: big.NewRat(0, 1), Max: big.NewRat(10, 1)}
	allowed := &IntegerParams{Allowed: []any{int64(1), 2.0}}

	runScalarTests(t, []scalarTest{
		{"int", &IntegerParams{}, true, 5, int64(5), ""},
		{"uint8", &IntegerParams{}, true, uint8(5), int64(5), ""},
		{"uint64 overflow", &IntegerParams{}, true, uint64(math.MaxUint64), nil, "must be of 'integer' type"},
		{"uint64 overflow coerced", &IntegerParams{}, false, uint64(math.MaxUint64), nil, "must be of 'integer' type"},
		{"uint64 max int", &IntegerParams{}, true, uint64(math.MaxInt64), int64(math.MaxInt64), ""},
		{"json number", &IntegerParams{}, true, json.Number("42"), int64(42), ""},
		{"json float number", &IntegerParams{}, true, json.Number("4.2"), nil, "must be of 'integer' type"},
		{"string strict", &IntegerParams{}, true, "5", nil, "must be of 'integer' type"},
		{"string coerced", &IntegerParams{}, false, " 7 ", int64(7), ""},
		{"bad string", &IntegerParams{}, false, "7a", nil, "must be of 'integer' type"},
		{"integral float coerced", &IntegerParams{}, false, 123.0, int64(123), ""},
		{"fractional float", &IntegerParams{}, false, 123.5, nil, "must be of 'integer' type"},
		{"float strict", &IntegerParams{}, true, 123.0, nil, "must be of 'integer' type"},
		{"bool strict", &IntegerParams{}, true, true, nil, "must be of 'integer' type"},
		{"bool coerced", &IntegerParams{}, false, true, int64(1), ""},
		{"min", bounded, true, -1, nil, "min value is '0'"},
		{"max", bounded, true, 11, nil, "max value is '10'"},
		{"in bounds", bounded, true, 10, int64(10), ""},
		{"allowed", allowed, true, 1, int64(1), ""},
		{"allowed across types", allowed, true, 2, int64(2), ""},
		{"unallowed", allowed, true, 3, nil, "unallowed value '3'"},
	})
}

func TestValidateFloat(t *testing.T) {
	bounded := &FloatParams{Min: big.NewRat(1, 2)}

	runScalarTests(t, []scalarTest{
		{"float", &FloatParams{}, true, 1.5, 1.5, ""},
		{"float32", &FloatParams{}, true, float32(0.5), 0.5, ""},
		{"int accepted strict", &FloatParams{}, true, 2, 2.0, ""},
		{"string strict", &FloatParams{}, true, "1.5", nil, "must be of 'float' type"},
		{"string coerced", &FloatParams{}, false, "1.5", 1.5, ""},
		{"bool strict", &FloatParams{}, true, false, nil, "must be of 'float' type"},
		{"bool coerced", &FloatParams{}, false, true, 1.0, ""},
		{"min", bounded, true, 0.25, nil, "min value is '0.5'"},
		{"min int", bounded, true, 0, nil, "min value is '0.5'"},
		{"infinity beyond min", bounded, true, math.Inf(1), math.Inf(1), ""},
	})
}

func TestValidateNumber(t *testing.T) {
	allowed := &NumberParams{Allowed: []any{int64(1), 2.5}}

	runScalarTests(t, []scalarTest{
		{"int", &NumberParams{}, true, 1, int64(1), ""},
		{"float", &NumberParams{}, true, 1.5, 1.5, ""},
		{"string strict", &NumberParams{}, true, "2.5", nil, "must be of 'int or float' type"},
		{"string coerced", &NumberParams{}, false, "2.5", 2.5, ""},
		{"bool strict", &NumberParams{}, true, true, nil, "must be of 'int or float' type"},
		{"bool coerced", &NumberParams{}, false, true, int64(1), ""},
		{"allowed", allowed, true, 2.5, 2.5, ""},
		{"allowed float equals int", allowed, true, 1.0, 1.0, ""},
		{"bool coerced then allowed", allowed, false, true, int64(1), ""},
		{"unallowed", allowed, true, 3, nil, "unallowed value '3'"},
	})
}

func TestValidateBoolean(t *testing.T) {
	onlyTrue := &BooleanParams{Allowed: []bool{true}}

	runScalarTests(t, []scalarTest{
		{"bool", &BooleanParams{}, true, false, false, ""},
		{"string strict", &BooleanParams{}, true, "true", nil, "must be of 'boolean' type"},
		{"string coerced", &BooleanParams{}, false, "TRUE", true, ""},
		{"false coerced", &BooleanParams{}, false, "False", false, ""},
		{"other string", &BooleanParams{}, false, "yes", nil, "must be of 'boolean' type"},
		{"number", &BooleanParams{}, false, 1, nil, "must be of 'boolean' type"},
		{"allowed", onlyTrue, true, true, true, ""},
		{"unallowed", onlyTrue, true, false, nil, "unallowed value 'false'"},
	})
}

func TestValidateDatetime(t *testing.T) {
	vd := New()

	got, err := vd.Validate("2024-01-02T03:04:05Z", NewSchema(&DatetimeParams{}))
	require.NoError(t, err)
	require.IsType(t, time.Time{}, got)
	assert.True(t, got.(time.Time).Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	got, err = vd.Validate("2024-01-02", NewSchema(&DatetimeParams{Format: "%Y-%m-%d"}))
	require.NoError(t, err)
	assert.True(t, got.(time.Time).Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	got, err = vd.Validate("02/01/2024", NewSchema(&DatetimeParams{Format: "02/01/2006"}))
	require.NoError(t, err)
	assert.Equal(t, time.January, got.(time.Time).Month())

	now := time.Now()
	got, err = vd.Validate(now, NewSchema(&DatetimeParams{}))
	require.NoError(t, err)
	assert.True(t, got.(time.Time).Equal(now))

	runScalarTests(t, []scalarTest{
		{"wrong layout", &DatetimeParams{Format: "date"}, true, "02/01/2024", nil, "must be of 'datetime' type"},
		{"not a string", &DatetimeParams{}, false, 123, nil, "must be of 'datetime' type"},
		{"bad format", &DatetimeParams{Format: "%Q"}, true, "x", nil, "must be of 'datetime' type"},
	})
}

func TestValidateObjectID(t *testing.T) {
	const id = "123e4567-e89b-12d3-a456-426614174000"
	opaque := strings.Repeat("x", 36)

	runScalarTests(t, []scalarTest{
		{"uuid", &ObjectIDParams{}, true, id, id, ""},
		{"opaque", &ObjectIDParams{}, true, opaque, opaque, ""},
		{"short", &ObjectIDParams{}, true, "abc", nil, "must be of 'objectid' type"},
		{"not a string", &ObjectIDParams{}, false, 123, nil, "must be of 'objectid' type"},
		{"strict uuid", &ObjectIDParams{UUID: true}, true, id, id, ""},
		{"strict uuid opaque", &ObjectIDParams{UUID: true}, true, opaque, nil, "must be of 'objectid' type"},
	})
}

func TestValidateFile(t *testing.T) {
	runScalarTests(t, []scalarTest{
		{"string", &FileParams{}, true, "data", "data", ""},
		{"list", &FileParams{}, true, []any{int64(1)}, []any{int64(1)}, ""},
		{"null", &FileParams{}, true, nil, nil, "null value not allowed"},
	})
}
