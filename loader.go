package dictschema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFileError reports a document that could not be read or decoded.
type LoadFileError struct {
	Path string
	Err  error
}

func (e *LoadFileError) Error() string {
	return fmt.Sprintf("failing loading %q: %v", e.Path, e.Err)
}

func (e *LoadFileError) Unwrap() error {
	return e.Err
}

// --

// UnmarshalJSON unmarshals into [any] keeping the distinction between
// integers and floats: integral literals decode to int64, others to float64.
func UnmarshalJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err == nil || err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return normalizeNumbers(doc), nil
}

func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, ok := asInt(v); ok {
			return i
		}
		if f, ok := asFloat(v); ok {
			return f
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumbers(item)
		}
	}
	return v
}

// LoadFile decodes the document at path. Files with extension .yaml or
// .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadFileError{path, err}
	}
	defer f.Close()

	var doc any
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		err = yaml.NewDecoder(f).Decode(&doc)
		doc = normalizeYAML(doc)
	} else {
		doc, err = UnmarshalJSON(f)
	}
	if err != nil {
		return nil, &LoadFileError{path, err}
	}
	return doc, nil
}

// normalizeYAML converts the int values produced by yaml.v3 to int64.
func normalizeYAML(v any) any {
	switch v := v.(type) {
	case int:
		return int64(v)
	case []any:
		for i, item := range v {
			v[i] = normalizeYAML(item)
		}
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeYAML(item)
		}
	}
	return v
}

// LoadDescriptor loads a schema descriptor from path. See LoadFile.
func LoadDescriptor(path string) (map[string]any, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &LoadFileError{path, fmt.Errorf("descriptor must be a dict, got %T", doc)}
	}
	return m, nil
}
