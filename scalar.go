// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"log/slog"
	"math"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/kozlovskilab/dictschema/kind"
)

const objectIDLength = 36

// nullValue handles a nil value: nil when s is nullable, NotNullable otherwise.
func nullValue(s *Schema, vloc string) (any, error) {
	if s.Nullable {
		return nil, nil
	}
	return nil, newError(vloc, &kind.NotNullable{})
}

func badType(vloc string, want string) *ValidationError {
	return newError(vloc, &kind.BadType{Want: want})
}

func (vd *Validator) validateString(v any, s *Schema, p *StringParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	str, ok := v.(string)
	if !ok {
		// numbers only; booleans are never stringified
		if vd.strict || !isNumber(v) {
			return nil, badType(vloc, "string")
		}
		var cs string
		if f, ok := v.(float64); ok {
			cs = formatFloat(f)
		} else if f, ok := v.(float32); ok {
			cs = formatFloat(float64(f))
		} else {
			var err error
			if cs, err = cast.ToStringE(v); err != nil {
				return nil, badType(vloc, "string")
			}
		}
		vd.coerced(vloc, TypeString, v, cs)
		str = cs
	}

	if p.MinLength != -1 || p.MaxLength != -1 {
		length := utf8.RuneCountInString(str)
		if p.MinLength != -1 && length < p.MinLength {
			return nil, newError(vloc, &kind.StrMinLength{Want: p.MinLength})
		}
		if p.MaxLength != -1 && length > p.MaxLength {
			return nil, newError(vloc, &kind.StrMaxLength{Want: p.MaxLength})
		}
	}

	if !p.Empty && str == "" {
		return nil, newError(vloc, &kind.EmptyNotAllowed{})
	}

	if p.Allowed != nil {
		found := false
		for _, a := range p.Allowed {
			if a == str {
				found = true
				break
			}
		}
		if !found {
			return nil, newError(vloc, &kind.UnallowedValue{Got: str})
		}
	}

	if p.Regex != nil && !p.Regex.MatchString(str) {
		return nil, newError(vloc, &kind.RegexMismatch{Pattern: p.Regex.String()})
	}

	return str, nil
}

func (vd *Validator) validateInteger(v any, s *Schema, p *IntegerParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	i, ok := asInt(v)
	if !ok {
		if vd.strict {
			return nil, badType(vloc, "integer")
		}
		if i, ok = coerceInt(v); !ok {
			return nil, badType(vloc, "integer")
		}
		vd.coerced(vloc, TypeInteger, v, i)
	}

	if err := checkNumber(i, p.Min, p.Max, p.Allowed, vloc); err != nil {
		return nil, err
	}
	return i, nil
}

// coerceInt converts booleans, integral floats and decimal strings.
func coerceInt(v any) (int64, bool) {
	switch v := v.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		return parseInt(v)
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func (vd *Validator) validateFloat(v any, s *Schema, p *FloatParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	f, ok := asFloat(v)
	if !ok {
		// integers are floats even in strict mode
		if i, isInt := asInt(v); isInt {
			f, ok = float64(i), true
		} else if !vd.strict {
			f, ok = coerceFloat(v)
		}
		if !ok {
			return nil, badType(vloc, "float")
		}
		vd.coerced(vloc, TypeFloat, v, f)
	}

	if err := checkNumber(f, p.Min, p.Max, p.Allowed, vloc); err != nil {
		return nil, err
	}
	return f, nil
}

// coerceFloat converts booleans and numeric strings.
func coerceFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		return parseFloat(v)
	}
	return 0, false
}

func (vd *Validator) validateNumber(v any, s *Schema, p *NumberParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	var n any
	if i, ok := asInt(v); ok {
		n = i
	} else if f, ok := asFloat(v); ok {
		n = f
	} else {
		if vd.strict {
			return nil, badType(vloc, "int or float")
		}
		switch x := v.(type) {
		case bool:
			n = int64(0)
			if x {
				n = int64(1)
			}
		case string:
			f, ok := parseFloat(x)
			if !ok {
				return nil, badType(vloc, "int or float")
			}
			n = f
		default:
			return nil, badType(vloc, "int or float")
		}
		vd.coerced(vloc, TypeNumber, v, n)
	}

	if err := checkNumber(n, p.Min, p.Max, p.Allowed, vloc); err != nil {
		return nil, err
	}
	return n, nil
}

// checkNumber applies min, max and allowed, in that order.
func checkNumber(n any, min, max *big.Rat, allowed []any, vloc string) *ValidationError {
	if min != nil && compareNum(n, min) < 0 {
		return newError(vloc, &kind.MinValue{Want: min})
	}
	if max != nil && compareNum(n, max) > 0 {
		return newError(vloc, &kind.MaxValue{Want: max})
	}
	if allowed != nil && !contains(allowed, n) {
		return newError(vloc, &kind.UnallowedValue{Got: n})
	}
	return nil
}

func (vd *Validator) validateBoolean(v any, s *Schema, p *BooleanParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	b, ok := v.(bool)
	if !ok {
		str, isStr := v.(string)
		if vd.strict || !isStr {
			return nil, badType(vloc, "boolean")
		}
		switch {
		case strings.EqualFold(str, "true"):
			b = true
		case strings.EqualFold(str, "false"):
			b = false
		default:
			return nil, badType(vloc, "boolean")
		}
		vd.coerced(vloc, TypeBoolean, v, b)
	}

	if p.Allowed != nil {
		found := false
		for _, a := range p.Allowed {
			if a == b {
				found = true
				break
			}
		}
		if !found {
			return nil, newError(vloc, &kind.UnallowedValue{Got: b})
		}
	}
	return b, nil
}

func (vd *Validator) validateDatetime(v any, s *Schema, p *DatetimeParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		parse, err := dateParser(p.Format)
		if err != nil {
			return nil, badType(vloc, "datetime")
		}
		t, err := parse(v)
		if err != nil {
			return nil, badType(vloc, "datetime")
		}
		return t, nil
	}
	return nil, badType(vloc, "datetime")
}

func (vd *Validator) validateObjectID(v any, s *Schema, p *ObjectIDParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	str, ok := v.(string)
	if !ok || utf8.RuneCountInString(str) != objectIDLength {
		return nil, badType(vloc, "objectid")
	}
	if p.UUID {
		if _, err := uuid.Parse(str); err != nil {
			return nil, badType(vloc, "objectid")
		}
	}
	return str, nil
}

func (vd *Validator) validateFile(v any, s *Schema, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}
	vd.logger.Debug("file value passed through",
		slog.String("path", absPtr(vloc)),
	)
	return v, nil
}
