// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kozlovskilab/dictschema/kind"
)

// ErrorKind describes a single validation issue. Implementations live in
// package kind.
type ErrorKind interface {
	LocalizedString(*message.Printer) string
}

var defaultPrinter = message.NewPrinter(language.English)

// SchemaError is the error type returned by Compile.
type SchemaError struct {
	// Location is the json-pointer of the offending node within the descriptor.
	Location string

	// Err is the error that occurred during compilation.
	Err error
}

func (se *SchemaError) Error() string {
	return fmt.Sprintf("dictschema: schema %s compilation failed: %v", absPtr(se.Location), se.Err)
}

func (se *SchemaError) Unwrap() error {
	return se.Err
}

// UnknownTypeError reports a schema whose type has no registered validator.
//
// It is a defect of the schema, never a validation issue of the value: it is
// returned by Compile wrapped in a SchemaError, and directly by Validate when
// a hand-built Schema carries no Params.
type UnknownTypeError struct {
	Location string
	Type     string
}

func (e *UnknownTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("dictschema: schema %s has no type", absPtr(e.Location))
	}
	return fmt.Sprintf("dictschema: unknown type %q at %s", e.Type, absPtr(e.Location))
}

// ValidationError is the error type returned by Validate.
//
// A leaf error carries only Kind. A composite error (kind.ObjectSchema or
// kind.ArrayItems) carries the failing children in Fields or Items; children
// that validated are never present.
type ValidationError struct {
	InstanceLocation string // location of the value within the instance being validated
	Kind             ErrorKind
	Fields           map[string]*ValidationError // failing object properties
	Items            map[int]*ValidationError    // failing array indexes
}

func newError(vloc string, k ErrorKind) *ValidationError {
	return &ValidationError{InstanceLocation: vloc, Kind: k}
}

// Message returns the message of this node, without its children.
func (ve *ValidationError) Message() string {
	return ve.Kind.LocalizedString(defaultPrinter)
}

func (ve *ValidationError) Error() string {
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("I[%s] %s", loc, ve.Message())
}

// GoString renders the whole issue tree, one issue per line, children
// indented below their parent.
func (ve *ValidationError) GoString() string {
	msg := ve.Error()
	for _, c := range ve.children() {
		for _, line := range strings.Split(c.GoString(), "\n") {
			msg += "\n  " + line
		}
	}
	return msg
}

// Issues returns the issue tree as plain values: a message string for a leaf,
// map[string]any for an object and map[int]any for an array.
func (ve *ValidationError) Issues() any {
	return ve.LocalizedIssues(defaultPrinter)
}

// LocalizedIssues is like Issues but renders messages with p.
func (ve *ValidationError) LocalizedIssues(p *message.Printer) any {
	switch {
	case ve.Fields != nil:
		m := make(map[string]any, len(ve.Fields))
		for name, c := range ve.Fields {
			m[name] = c.LocalizedIssues(p)
		}
		return m
	case ve.Items != nil:
		m := make(map[int]any, len(ve.Items))
		for i, c := range ve.Items {
			m[i] = c.LocalizedIssues(p)
		}
		return m
	default:
		return ve.Kind.LocalizedString(p)
	}
}

// MarshalJSON encodes the issue tree. Array indexes become object keys.
func (ve *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(ve.Issues())
}

// children returns the nested errors in a stable order.
func (ve *ValidationError) children() []*ValidationError {
	var causes []*ValidationError
	if len(ve.Fields) > 0 {
		names := make([]string, 0, len(ve.Fields))
		for name := range ve.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			causes = append(causes, ve.Fields[name])
		}
	}
	if len(ve.Items) > 0 {
		idx := make([]int, 0, len(ve.Items))
		for i := range ve.Items {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		for _, i := range idx {
			causes = append(causes, ve.Items[i])
		}
	}
	return causes
}

// IsValidationError tells whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func objectError(vloc string, issues map[string]*ValidationError) *ValidationError {
	return &ValidationError{InstanceLocation: vloc, Kind: &kind.ObjectSchema{}, Fields: issues}
}

func arrayError(vloc string, issues map[int]*ValidationError) *ValidationError {
	return &ValidationError{InstanceLocation: vloc, Kind: &kind.ArrayItems{}, Items: issues}
}

// escape converts given token to valid json-pointer token
func escape(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

func joinPtr(ptr, token string) string {
	return ptr + "/" + escape(token)
}

func joinIdx(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}

func absPtr(ptr string) string {
	return "#" + ptr
}
