// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var vld = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// report descriptor key names instead of Go field names
	vld.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
}

// A Compiler turns schema descriptors into Schemas.
//
// A descriptor is a map[string]any that always carries "type". Common keys
// are "required" (default true), "nullable" and "default". The remaining
// keys depend on the type:
//
//	string     minlength, maxlength, empty, allowed, regex
//	integer    min, max, allowed
//	float      min, max, allowed
//	number     min, max, allowed
//	boolean    allowed
//	datetime   format
//	objectid   uuid
//	dict       properties (or schema), allow_unknown
//	list       items (or schema), minlength, maxlength, allowed
//	file
//
// Any other key is rejected.
type Compiler struct {
	// CompileRegex compiles "regex" values and pattern property names.
	// Defaults to StdRegexp. Use BacktrackRegexp for lookarounds.
	CompileRegex func(expr string) (Regexp, error)

	// DefaultDateFormat is used by datetime descriptors without "format".
	// Empty means "date-time".
	DefaultDateFormat string
}

// NewCompiler returns a Compiler using StdRegexp.
func NewCompiler() *Compiler {
	return &Compiler{CompileRegex: StdRegexp}
}

// Compile compiles descriptor with a default Compiler.
func Compile(descriptor map[string]any) (*Schema, error) {
	return NewCompiler().Compile(descriptor)
}

// MustCompile is like Compile but panics if the descriptor cannot be compiled.
// It simplifies safe initialization of global variables holding compiled Schemas.
func MustCompile(descriptor map[string]any) *Schema {
	s, err := Compile(descriptor)
	if err != nil {
		panic(err)
	}
	return s
}

// Compile compiles descriptor. Errors are of type *SchemaError; an unknown
// or missing type is reported as a SchemaError wrapping *UnknownTypeError.
func (c *Compiler) Compile(descriptor map[string]any) (*Schema, error) {
	return c.compile(descriptor, "")
}

// common holds the keys shared by every descriptor.
type common struct {
	Type     string `mapstructure:"type"`
	Required *bool  `mapstructure:"required"`
	Nullable bool   `mapstructure:"nullable"`
}

var commonKeys = []string{"type", "required", "nullable", "default"}

func (c *Compiler) compile(m map[string]any, sloc string) (*Schema, error) {
	var cd common
	if err := mapstructure.Decode(m, &cd); err != nil {
		return nil, &SchemaError{Location: sloc, Err: err}
	}
	if cd.Type == "" {
		return nil, &SchemaError{Location: sloc, Err: &UnknownTypeError{Location: sloc}}
	}
	t, ok := ParseType(cd.Type)
	if !ok {
		return nil, &SchemaError{Location: sloc, Err: &UnknownTypeError{Location: sloc, Type: cd.Type}}
	}

	s := &Schema{Location: sloc, Required: true, Nullable: cd.Nullable}
	if cd.Required != nil {
		s.Required = *cd.Required
	}
	if def, ok := m["default"]; ok {
		s.Default, s.HasDefault = def, true
	}

	rest := make(map[string]any, len(m))
	for k, v := range m {
		rest[k] = v
	}
	for _, k := range commonKeys {
		delete(rest, k)
	}

	var err error
	switch t {
	case TypeString:
		s.Params, err = c.compileString(rest)
	case TypeInteger:
		var nd numericDesc
		if err = decode(rest, &nd); err == nil {
			p := &IntegerParams{Allowed: nd.Allowed}
			p.Min, p.Max, err = nd.bounds()
			s.Params = p
		}
	case TypeFloat:
		var nd numericDesc
		if err = decode(rest, &nd); err == nil {
			p := &FloatParams{Allowed: nd.Allowed}
			p.Min, p.Max, err = nd.bounds()
			s.Params = p
		}
	case TypeNumber:
		var nd numericDesc
		if err = decode(rest, &nd); err == nil {
			p := &NumberParams{Allowed: nd.Allowed}
			p.Min, p.Max, err = nd.bounds()
			s.Params = p
		}
	case TypeBoolean:
		var bd booleanDesc
		if err = decode(rest, &bd); err == nil {
			s.Params = &BooleanParams{Allowed: bd.Allowed}
		}
	case TypeDatetime:
		s.Params, err = c.compileDatetime(rest)
	case TypeObjectID:
		var od objectIDDesc
		if err = decode(rest, &od); err == nil {
			s.Params = &ObjectIDParams{UUID: od.UUID}
		}
	case TypeObject:
		s.Params, err = c.compileObject(rest, sloc)
	case TypeArray:
		s.Params, err = c.compileArray(rest, sloc)
	case TypeFile:
		err = decode(rest, &struct{}{})
		s.Params = &FileParams{}
	}
	if err != nil {
		if _, ok := err.(*SchemaError); ok {
			return nil, err
		}
		return nil, &SchemaError{Location: sloc, Err: err}
	}

	// store defaults normalized, so that materialized values are too
	if s.HasDefault && s.Default != nil {
		def, err := New().Validate(s.Default, s)
		if err != nil {
			return nil, &SchemaError{Location: sloc + "/default", Err: fmt.Errorf("invalid default: %w", err)}
		}
		s.Default = def
	}
	return s, nil
}

// decode decodes m into desc, rejecting unknown keys, then validates desc.
func decode(m map[string]any, desc any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(integralHook),
		ErrorUnused: true,
		Result:      desc,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(m); err != nil {
		return err
	}
	if err := vld.Struct(desc); err != nil {
		return err
	}
	if d, ok := desc.(interface{ validate() error }); ok {
		return d.validate()
	}
	return nil
}

// integralHook rejects floats with a fraction where an int is expected,
// which mapstructure would otherwise truncate.
func integralHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	if f, ok := data.(float64); ok && f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	if f, ok := data.(float32); ok && float64(f) != math.Trunc(float64(f)) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return data, nil
}

// lengths converts optional length bounds to -1 sentinels.
func lengths(minLength, maxLength *int) (min, max int, err error) {
	min, max = -1, -1
	if minLength != nil {
		min = *minLength
	}
	if maxLength != nil {
		max = *maxLength
	}
	if min != -1 && max != -1 && max < min {
		return 0, 0, fmt.Errorf("maxlength %d is less than minlength %d", max, min)
	}
	return min, max, nil
}

type stringDesc struct {
	MinLength *int     `mapstructure:"minlength" validate:"omitempty,gte=0"`
	MaxLength *int     `mapstructure:"maxlength" validate:"omitempty,gte=0"`
	Empty     bool     `mapstructure:"empty"`
	Allowed   []string `mapstructure:"allowed"`
	Regex     string   `mapstructure:"regex"`
}

func (c *Compiler) compileString(m map[string]any) (Params, error) {
	var d stringDesc
	if err := decode(m, &d); err != nil {
		return nil, err
	}
	p := NewStringParams()
	var err error
	if p.MinLength, p.MaxLength, err = lengths(d.MinLength, d.MaxLength); err != nil {
		return nil, err
	}
	p.Empty = d.Empty
	p.Allowed = d.Allowed
	if _, ok := m["regex"]; ok {
		re, err := NewPattern(d.Regex, c.CompileRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", d.Regex, err)
		}
		p.Regex = re
	}
	return p, nil
}

type numericDesc struct {
	Min     any   `mapstructure:"min"`
	Max     any   `mapstructure:"max"`
	Allowed []any `mapstructure:"allowed"`
}

func (d *numericDesc) validate() error {
	for _, a := range d.Allowed {
		if !isNumber(a) {
			return fmt.Errorf("allowed value %v is not a number", a)
		}
	}
	return nil
}

func (d *numericDesc) bounds() (min, max *big.Rat, err error) {
	if min, err = ratBound("min", d.Min); err != nil {
		return nil, nil, err
	}
	if max, err = ratBound("max", d.Max); err != nil {
		return nil, nil, err
	}
	if min != nil && max != nil && max.Cmp(min) < 0 {
		return nil, nil, fmt.Errorf("max %s is less than min %s", max.RatString(), min.RatString())
	}
	return min, max, nil
}

func ratBound(key string, v any) (*big.Rat, error) {
	if v == nil {
		return nil, nil
	}
	if !isNumber(v) {
		return nil, fmt.Errorf("%s must be a number, got %T", key, v)
	}
	r := toRat(v)
	if r == nil {
		return nil, fmt.Errorf("%s must be finite", key)
	}
	return r, nil
}

type booleanDesc struct {
	Allowed []bool `mapstructure:"allowed"`
}

type datetimeDesc struct {
	Format string `mapstructure:"format"`
}

func (c *Compiler) compileDatetime(m map[string]any) (Params, error) {
	var d datetimeDesc
	if err := decode(m, &d); err != nil {
		return nil, err
	}
	if d.Format == "" {
		d.Format = c.DefaultDateFormat
	}
	if _, err := dateParser(d.Format); err != nil {
		return nil, err
	}
	return &DatetimeParams{Format: d.Format}, nil
}

type objectIDDesc struct {
	UUID bool `mapstructure:"uuid"`
}

type objectDesc struct {
	Properties   map[string]any `mapstructure:"properties"`
	Schema       map[string]any `mapstructure:"schema"`
	AllowUnknown *bool          `mapstructure:"allow_unknown"`
}

func (d *objectDesc) validate() error {
	if d.Properties != nil && d.Schema != nil {
		return fmt.Errorf("properties and schema are mutually exclusive")
	}
	return nil
}

func (c *Compiler) compileObject(m map[string]any, sloc string) (Params, error) {
	var d objectDesc
	if err := decode(m, &d); err != nil {
		return nil, err
	}

	key, props := "properties", d.Properties
	if d.Schema != nil {
		key, props = "schema", d.Schema
	}
	p := &ObjectParams{}
	if m["properties"] == nil && m["schema"] == nil {
		// without a properties map every key is accepted; an empty one
		// accepts none
		p.AllowUnknown = true
	}
	if d.AllowUnknown != nil {
		p.AllowUnknown = *d.AllowUnknown
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ploc := joinPtr(sloc+"/"+key, name)
		pm, ok := props[name].(map[string]any)
		if !ok {
			return nil, &SchemaError{Location: ploc, Err: fmt.Errorf("must be a dict, got %T", props[name])}
		}
		ps, err := c.compile(pm, ploc)
		if err != nil {
			return nil, err
		}
		prop := &Property{Name: name, Schema: ps}
		if isPatternKey(name) {
			if prop.Pattern, err = NewPattern(name, c.CompileRegex); err != nil {
				return nil, &SchemaError{Location: ploc, Err: fmt.Errorf("invalid pattern key: %w", err)}
			}
		}
		p.Properties = append(p.Properties, prop)
	}
	return p, nil
}

// isPatternKey tells whether a property name is a regex, i.e. starts
// with '^' and ends with '$'.
func isPatternKey(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, "^") && strings.HasSuffix(name, "$")
}

type arrayDesc struct {
	MinLength *int  `mapstructure:"minlength" validate:"omitempty,gte=0"`
	MaxLength *int  `mapstructure:"maxlength" validate:"omitempty,gte=0"`
	Items     any   `mapstructure:"items"`
	Schema    any   `mapstructure:"schema"`
	Allowed   []any `mapstructure:"allowed"`
}

func (c *Compiler) compileArray(m map[string]any, sloc string) (Params, error) {
	var d arrayDesc
	if err := decode(m, &d); err != nil {
		return nil, err
	}
	if d.Items != nil && d.Schema != nil {
		return nil, fmt.Errorf("items and schema are mutually exclusive")
	}

	p := NewArrayParams(nil)
	var err error
	if p.MinLength, p.MaxLength, err = lengths(d.MinLength, d.MaxLength); err != nil {
		return nil, err
	}
	p.Allowed = d.Allowed

	key, items := "items", d.Items
	if d.Schema != nil {
		key, items = "schema", d.Schema
	}
	if items != nil {
		iloc := sloc + "/" + key
		im, ok := items.(map[string]any)
		if !ok {
			return nil, &SchemaError{Location: iloc, Err: fmt.Errorf("must be a dict, got %T", items)}
		}
		is, err := c.compile(im, iloc)
		if err != nil {
			return nil, err
		}
		p.Items = is
	}
	return p, nil
}
