// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dictschema

import (
	"sort"

	"github.com/mohae/deepcopy"

	"github.com/kozlovskilab/dictschema/kind"
)

// resolvedProperty binds a concrete key to the schema that validates it.
type resolvedProperty struct {
	name   string
	schema *Schema
}

// resolve expands p.Properties against the keys of obj. Literal properties
// take precedence; each pattern property claims, in sorted order, the keys
// of obj not claimed by a literal or an earlier pattern.
func (p *ObjectParams) resolve(obj map[string]any) ([]resolvedProperty, map[string]struct{}) {
	claimed := make(map[string]struct{}, len(p.Properties))
	for _, prop := range p.Properties {
		if prop.Pattern == nil {
			claimed[prop.Name] = struct{}{}
		}
	}

	var keys []string
	resolved := make([]resolvedProperty, 0, len(p.Properties))
	for _, prop := range p.Properties {
		if prop.Pattern == nil {
			resolved = append(resolved, resolvedProperty{prop.Name, prop.Schema})
			continue
		}
		if keys == nil {
			keys = make([]string, 0, len(obj))
			for key := range obj {
				keys = append(keys, key)
			}
			sort.Strings(keys)
		}
		for _, key := range keys {
			if _, ok := claimed[key]; ok {
				continue
			}
			if prop.Pattern.MatchString(key) {
				claimed[key] = struct{}{}
				resolved = append(resolved, resolvedProperty{key, prop.Schema})
			}
		}
	}
	return resolved, claimed
}

func (vd *Validator) validateObject(v any, s *Schema, p *ObjectParams, vloc string) (any, error) {
	if v == nil {
		return nullValue(s, vloc)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, badType(vloc, "dict")
	}

	resolved, claimed := p.resolve(obj)
	issues := make(map[string]*ValidationError)

	for _, rp := range resolved {
		if rp.schema == nil {
			return nil, &UnknownTypeError{Location: joinPtr(s.Location+"/properties", rp.name)}
		}
		pvalue, ok := obj[rp.name]
		if !ok {
			if rp.schema.Required {
				issues[rp.name] = newError(joinPtr(vloc, rp.name), &kind.RequiredField{})
			} else if rp.schema.HasDefault {
				obj[rp.name] = deepcopy.Copy(rp.schema.Default)
			}
			continue
		}
		nv, err := vd.validate(pvalue, rp.schema, joinPtr(vloc, rp.name))
		if err != nil {
			if ve, ok := err.(*ValidationError); ok {
				issues[rp.name] = ve
				continue
			}
			return nil, err
		}
		obj[rp.name] = nv
	}

	if !p.AllowUnknown {
		for key := range obj {
			if _, ok := claimed[key]; !ok {
				issues[key] = newError(joinPtr(vloc, key), &kind.UnknownField{})
			}
		}
	}

	if len(issues) > 0 {
		return nil, objectError(vloc, issues)
	}
	return obj, nil
}
