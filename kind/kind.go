// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kind defines the issue kinds reported by dictschema validators.
//
// Every kind renders itself through a *message.Printer so callers can
// plug in their own catalog; String uses the built-in English printer.
package kind

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// --

type NotNullable struct{}

func (*NotNullable) LocalizedString(p *message.Printer) string {
	return p.Sprintf("null value not allowed")
}

func (k *NotNullable) String() string {
	return k.LocalizedString(printer)
}

// --

// BadType reports a runtime type mismatch that could not be coerced.
type BadType struct {
	Want string
}

func (k *BadType) LocalizedString(p *message.Printer) string {
	return p.Sprintf("must be of '%s' type", k.Want)
}

func (k *BadType) String() string {
	return k.LocalizedString(printer)
}

// --

type EmptyNotAllowed struct{}

func (*EmptyNotAllowed) LocalizedString(p *message.Printer) string {
	return p.Sprintf("empty values not allowed")
}

func (k *EmptyNotAllowed) String() string {
	return k.LocalizedString(printer)
}

// --

type RequiredField struct{}

func (*RequiredField) LocalizedString(p *message.Printer) string {
	return p.Sprintf("required field")
}

func (k *RequiredField) String() string {
	return k.LocalizedString(printer)
}

// --

type UnknownField struct{}

func (*UnknownField) LocalizedString(p *message.Printer) string {
	return p.Sprintf("unknown field")
}

func (k *UnknownField) String() string {
	return k.LocalizedString(printer)
}

// --

type UnallowedValue struct {
	Got any
}

func (k *UnallowedValue) LocalizedString(p *message.Printer) string {
	return p.Sprintf("unallowed value '%s'", Display(k.Got))
}

func (k *UnallowedValue) String() string {
	return k.LocalizedString(printer)
}

// --

// UnallowedValues lists the distinct array elements missing from the
// allowed set, in order of first occurrence.
type UnallowedValues struct {
	Got []any
}

func (k *UnallowedValues) LocalizedString(p *message.Printer) string {
	items := make([]string, 0, len(k.Got))
	for _, v := range k.Got {
		items = append(items, Quote(v))
	}
	return p.Sprintf("unallowed values [%s]", strings.Join(items, ", "))
}

func (k *UnallowedValues) String() string {
	return k.LocalizedString(printer)
}

// --

// MinLength is the array length lower bound.
type MinLength struct {
	Want int
}

func (k *MinLength) LocalizedString(p *message.Printer) string {
	return p.Sprintf("min length is '%s'", strconv.Itoa(k.Want))
}

func (k *MinLength) String() string {
	return k.LocalizedString(printer)
}

// --

// MaxLength is the array length upper bound.
type MaxLength struct {
	Want int
}

func (k *MaxLength) LocalizedString(p *message.Printer) string {
	return p.Sprintf("max length is '%s'", strconv.Itoa(k.Want))
}

func (k *MaxLength) String() string {
	return k.LocalizedString(printer)
}

// --

// StrMinLength is the string length lower bound, counted in characters.
type StrMinLength struct {
	Want int
}

func (k *StrMinLength) LocalizedString(p *message.Printer) string {
	return p.Sprintf("minimum length of the string is '%s' characters", strconv.Itoa(k.Want))
}

func (k *StrMinLength) String() string {
	return k.LocalizedString(printer)
}

// --

type StrMaxLength struct {
	Want int
}

func (k *StrMaxLength) LocalizedString(p *message.Printer) string {
	return p.Sprintf("maximum length of the string is '%s' characters", strconv.Itoa(k.Want))
}

func (k *StrMaxLength) String() string {
	return k.LocalizedString(printer)
}

// --

type MinValue struct {
	Want *big.Rat
}

func (k *MinValue) LocalizedString(p *message.Printer) string {
	return p.Sprintf("min value is '%s'", Rat(k.Want))
}

func (k *MinValue) String() string {
	return k.LocalizedString(printer)
}

// --

type MaxValue struct {
	Want *big.Rat
}

func (k *MaxValue) LocalizedString(p *message.Printer) string {
	return p.Sprintf("max value is '%s'", Rat(k.Want))
}

func (k *MaxValue) String() string {
	return k.LocalizedString(printer)
}

// --

type RegexMismatch struct {
	Pattern string
}

func (k *RegexMismatch) LocalizedString(p *message.Printer) string {
	return p.Sprintf("value does not match regex '%s'", k.Pattern)
}

func (k *RegexMismatch) String() string {
	return k.LocalizedString(printer)
}

// --

// ObjectSchema is the composite kind of an object whose properties failed.
type ObjectSchema struct{}

func (*ObjectSchema) LocalizedString(p *message.Printer) string {
	return p.Sprintf("dict contains some errors")
}

func (k *ObjectSchema) String() string {
	return k.LocalizedString(printer)
}

// --

// ArrayItems is the composite kind of an array whose items failed.
type ArrayItems struct{}

func (*ArrayItems) LocalizedString(p *message.Printer) string {
	return p.Sprintf("list contains some errors")
}

func (k *ArrayItems) String() string {
	return k.LocalizedString(printer)
}

// --

// Display formats a scalar for interpolation into a message.
// Numbers are rendered without locale grouping.
func Display(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	default:
		return fmt.Sprint(v)
	}
}

// Quote is like Display but single-quotes strings.
func Quote(v any) string {
	if s, ok := v.(string); ok {
		return quote(s)
	}
	return Display(v)
}

// Rat formats r as an integer when it is one, otherwise as a decimal.
func Rat(r *big.Rat) string {
	if r == nil {
		return ""
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quote(s string) string {
	s = fmt.Sprintf("%q", s)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s[1:len(s)-1] + "'"
}
