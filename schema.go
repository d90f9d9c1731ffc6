// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"math/big"
)

// Type enumerates the supported value types.
type Type int

const (
	TypeString Type = iota + 1
	TypeInteger
	TypeFloat
	TypeNumber
	TypeBoolean
	TypeDatetime
	TypeObjectID
	TypeObject
	TypeArray
	TypeFile
)

var typeNames = map[Type]string{
	TypeString:   "string",
	TypeInteger:  "integer",
	TypeFloat:    "float",
	TypeNumber:   "number",
	TypeBoolean:  "boolean",
	TypeDatetime: "datetime",
	TypeObjectID: "objectid",
	TypeObject:   "dict",
	TypeArray:    "list",
	TypeFile:     "file",
}

var typeAliases = map[string]Type{
	"string":    TypeString,
	"integer":   TypeInteger,
	"float":     TypeFloat,
	"number":    TypeNumber,
	"boolean":   TypeBoolean,
	"datetime":  TypeDatetime,
	"objectid":  TypeObjectID,
	"opaque-id": TypeObjectID,
	"object":    TypeObject,
	"dict":      TypeObject,
	"array":     TypeArray,
	"list":      TypeArray,
	"file":      TypeFile,
}

// ParseType resolves a descriptor type name, including the aliases
// "object"/"dict", "array"/"list" and "objectid"/"opaque-id".
func ParseType(name string) (Type, bool) {
	t, ok := typeAliases[name]
	return t, ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// A Schema describes the expectations for one position in a value tree.
//
// Params selects the type: exactly one of the *Params structs below.
type Schema struct {
	Location string // json-pointer of this schema within its descriptor

	// Required is consulted only by a parent object, when the key is absent.
	Required bool
	Nullable bool

	// Default is stored by a parent object when the key is absent and
	// Required is false. HasDefault distinguishes a nil default from none.
	Default    any
	HasDefault bool

	Params Params
}

// NewSchema returns a required, non-nullable schema with params p.
func NewSchema(p Params) *Schema {
	return &Schema{Required: true, Params: p}
}

// Type returns the type selected by s.Params, or 0 when there is none.
func (s *Schema) Type() Type {
	if s.Params == nil {
		return 0
	}
	return s.Params.typ()
}

func (s *Schema) String() string {
	return absPtr(s.Location)
}

// Validate validates v against s in strict mode with default options,
// returning the normalized value. See Validator.Validate.
func (s *Schema) Validate(v any) (any, error) {
	return New().Validate(v, s)
}

// Params is implemented by the per-type parameter structs.
type Params interface {
	typ() Type
}

// StringParams constrains strings. Lengths count characters, not bytes.
type StringParams struct {
	MinLength int // -1 if not specified.
	MaxLength int // -1 if not specified.
	Empty     bool
	Allowed   []string // nil if not specified.
	Regex     *Pattern
}

// NewStringParams returns StringParams with no length bounds.
func NewStringParams() *StringParams {
	return &StringParams{MinLength: -1, MaxLength: -1}
}

// IntegerParams constrains integers. Allowed holds numbers.
//
// Accepted integers normalize to int64; a uint64 above math.MaxInt64
// does not fit and is rejected as a bad type.
type IntegerParams struct {
	Min     *big.Rat
	Max     *big.Rat
	Allowed []any
}

// FloatParams constrains floats.
type FloatParams struct {
	Min     *big.Rat
	Max     *big.Rat
	Allowed []any
}

// NumberParams constrains values that may be either integer or float.
type NumberParams struct {
	Min     *big.Rat
	Max     *big.Rat
	Allowed []any
}

type BooleanParams struct {
	Allowed []bool
}

// DatetimeParams parses strings into time.Time using Format, which is a
// named layout (see RegisterDateFormat), a strftime pattern containing '%'
// or a Go reference layout. Empty means "date-time".
type DatetimeParams struct {
	Format string
}

// ObjectIDParams checks 36 character identifiers. With UUID set the
// identifier must also parse as a UUID.
type ObjectIDParams struct {
	UUID bool
}

// Property is one entry of ObjectParams.Properties. Pattern is set for
// regex-named properties, which apply to every input key they match.
type Property struct {
	Name    string
	Pattern *Pattern
	Schema  *Schema
}

// ObjectParams constrains map[string]any values. Properties are visited
// in slice order.
type ObjectParams struct {
	Properties   []*Property
	AllowUnknown bool
}

// ArrayParams constrains []any values.
type ArrayParams struct {
	Items     *Schema // nil if items are not validated.
	MinLength int     // -1 if not specified.
	MaxLength int     // -1 if not specified.
	Allowed   []any   // nil if not specified.
}

// NewArrayParams returns ArrayParams validating every item with items.
func NewArrayParams(items *Schema) *ArrayParams {
	return &ArrayParams{Items: items, MinLength: -1, MaxLength: -1}
}

// FileParams accepts any value unchanged.
type FileParams struct{}

func (*StringParams) typ() Type   { return TypeString }
func (*IntegerParams) typ() Type  { return TypeInteger }
func (*FloatParams) typ() Type    { return TypeFloat }
func (*NumberParams) typ() Type   { return TypeNumber }
func (*BooleanParams) typ() Type  { return TypeBoolean }
func (*DatetimeParams) typ() Type { return TypeDatetime }
func (*ObjectIDParams) typ() Type { return TypeObjectID }
func (*ObjectParams) typ() Type   { return TypeObject }
func (*ArrayParams) typ() Type    { return TypeArray }
func (*FileParams) typ() Type     { return TypeFile }
