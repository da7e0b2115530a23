package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBaseURL = "https://sitewatch.schemas.local/"

// SchemaSet holds compiled JSON Schemas keyed by name. They check type shape
// and enum values only.
type SchemaSet struct {
	schemas map[string]*jsonschema.Schema
}

// CompileSchemas compiles <name>.schema.json from fsys for every name.
func CompileSchemas(fsys fs.FS, names ...string) (*SchemaSet, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name+".schema.json")
		if err != nil {
			return nil, fmt.Errorf("schema %s load failed: %w", name, err)
		}
		if err := c.AddResource(schemaBaseURL+name+".schema.json", bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("schema %s load failed: %w", name, err)
		}
	}
	set := &SchemaSet{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		compiled, err := c.Compile(schemaBaseURL + name + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("schema %s compile failed: %w", name, err)
		}
		set.schemas[name] = compiled
	}
	return set, nil
}

// Check validates raw JSON against the named schema and reports every
// failing leaf as a ValidationIssue.
func (s *SchemaSet) Check(name string, raw []byte, v *Validator) {
	schema, ok := s.schemas[name]
	if !ok {
		v.Add("", "no schema registered for "+name)
		return
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		v.Add("", "must be valid JSON")
		return
	}
	err := schema.Validate(doc)
	if err == nil {
		return
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		v.Add("", err.Error())
		return
	}
	collectLeaves(ve, v)
}

func collectLeaves(ve *jsonschema.ValidationError, v *Validator) {
	if len(ve.Causes) == 0 {
		v.Add(fieldFromPointer(ve.InstanceLocation), ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, v)
	}
}

// fieldFromPointer turns a JSON pointer like /workSchedule/shift into
// workSchedule.shift.
func fieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
