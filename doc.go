// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dictschema validates decoded dict/list values against declarative
schemas.

A schema is described by a descriptor, a map[string]any that always carries
"type" plus the constraints of that type:

	sch, err := dictschema.Compile(map[string]any{
		"type": "dict",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "minlength": 1},
			"age":   map[string]any{"type": "integer", "min": 0, "required": false},
			"^tag[0-9]$": map[string]any{"type": "string", "required": false},
		},
	})
	if err != nil {
		return err
	}
	v, err := sch.Validate(doc)

Supported types are string, integer, float, number, boolean, datetime,
objectid, dict (alias object), list (alias array) and file. Property names
starting with '^' and ending with '$' are regular expressions applied to the
input keys not matched by a literal property.

Validate never modifies its argument: it returns a normalized copy, with
coerced scalars and defaults filled in. On failure it returns a
*ValidationError whose Issues mirror the shape of the input:

	{"name": "required field", "items": {2: "must be of 'integer' type"}}

By default validation is strict. Use a Validator with WithStrictMode(false)
to coerce numeric strings, integral floats and "true"/"false" strings to the
declared type.

Descriptors can be loaded from JSON or YAML files using LoadDescriptor.
*/
package dictschema
