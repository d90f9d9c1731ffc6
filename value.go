package dictschema

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// asInt reports whether v is an integer value, returning it as int64.
// Booleans are not integers.
func asInt(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt(v)
	case json.Number:
		if isFloatLiteral(string(v)) {
			return 0, false
		}
		i, err := v.Int64()
		return i, err == nil
	}
	return 0, false
}

func uintToInt(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// asFloat reports whether v is a floating point value. Integral
// json.Number literals are integers, not floats.
func asFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		if !isFloatLiteral(string(v)) {
			if _, err := v.Int64(); err == nil {
				return 0, false
			}
		}
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}

// formatFloat formats f as the shortest repr that round-trips, keeping a
// trailing ".0" on integral values and switching to exponent notation
// below 1e-4 and from 1e16 on: 123.0, 1.5e-07, 1e+21.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// parseInt parses a decimal integer literal, ignoring surrounding spaces.
func parseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return i, err == nil
}

// parseFloat parses a decimal float literal, ignoring surrounding spaces.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// toRat converts a normalized numeric value to *big.Rat. It returns nil
// for non-numbers and for NaN and infinities.
func toRat(v any) *big.Rat {
	if i, ok := asInt(v); ok {
		return new(big.Rat).SetInt64(i)
	}
	if f, ok := asFloat(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return new(big.Rat).SetFloat64(f)
	}
	return nil
}

// compareNum compares the number v with bound. Infinities compare beyond
// every bound; NaN compares equal so that it never violates a bound.
func compareNum(v any, bound *big.Rat) int {
	if f, ok := asFloat(v); ok {
		switch {
		case math.IsNaN(f):
			return 0
		case math.IsInf(f, 1):
			return 1
		case math.IsInf(f, -1):
			return -1
		}
	}
	r := toRat(v)
	if r == nil {
		return 0
	}
	return r.Cmp(bound)
}

func isNumber(v any) bool {
	if _, ok := asInt(v); ok {
		return true
	}
	_, ok := asFloat(v)
	return ok
}

// equals tells if given two values are equal. Numbers compare by value
// across integer and float representations; booleans never equal numbers.
func equals(v1, v2 any) bool {
	if isNumber(v1) || isNumber(v2) {
		if !isNumber(v1) || !isNumber(v2) {
			return false
		}
		r1, r2 := toRat(v1), toRat(v2)
		if r1 == nil || r2 == nil {
			f1, _ := asFloat(v1)
			f2, _ := asFloat(v2)
			return f1 == f2
		}
		return r1.Cmp(r2) == 0
	}
	switch v1 := v1.(type) {
	case []any:
		arr2, ok := v2.([]any)
		if !ok || len(v1) != len(arr2) {
			return false
		}
		for i := range v1 {
			if !equals(v1[i], arr2[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		obj2, ok := v2.(map[string]any)
		if !ok || len(v1) != len(obj2) {
			return false
		}
		for k, item := range v1 {
			other, ok := obj2[k]
			if !ok || !equals(item, other) {
				return false
			}
		}
		return true
	}
	if v1 == nil || v2 == nil {
		return v1 == v2
	}
	t1, t2 := reflect.TypeOf(v1), reflect.TypeOf(v2)
	if t1 != t2 || !t1.Comparable() {
		return false
	}
	return v1 == v2
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if equals(item, v) {
			return true
		}
	}
	return false
}
