// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"github.com/kozlovskilab/dictschema/kind"
)

func (vd *Validator) validateArray(v any, s *Schema, p *ArrayParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, badType(vloc, "list")
	}

	// length and allowed fail the array as a whole, before any item is visited
	if p.MinLength != -1 && len(arr) < p.MinLength {
		return nil, newError(vloc, &kind.MinLength{Want: p.MinLength})
	}
	if p.MaxLength != -1 && len(arr) > p.MaxLength {
		return nil, newError(vloc, &kind.MaxLength{Want: p.MaxLength})
	}
	if p.Allowed != nil {
		var disallowed []any
		for _, item := range arr {
			if !contains(p.Allowed, item) && !contains(disallowed, item) {
				disallowed = append(disallowed, item)
			}
		}
		if len(disallowed) > 0 {
			return nil, newError(vloc, &kind.UnallowedValues{Got: disallowed})
		}
	}

	if p.Items == nil {
		return arr, nil
	}

	issues := make(map[int]*ValidationError)
	for i, item := range arr {
		nv, err := vd.validate(item, p.Items, joinIdx(vloc, i))
		if err != nil {
			if ve, ok := err.(*ValidationError); ok {
				issues[i] = ve
				continue
			}
			return nil, err
		}
		arr[i] = nv
	}

	if len(issues) > 0 {
		return nil, arrayError(vloc, issues)
	}
	return arr, nil
}
