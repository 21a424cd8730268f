/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/suparena/entitycrud/storagemodels"
)

// schemaFile is the on-disk layout of a schema document.
type schemaFile struct {
	Schemas map[string]storagemodels.Schema `yaml:"schemas"`
}

// LoadSchemaFile decodes a YAML schema document into schemas keyed by entity
// name. Unknown keys are rejected. The schemas are validated but not
// registered; callers bind each one to its Go type with RegisterSchema.
func LoadSchemaFile(r io.Reader) (map[string]storagemodels.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc schemaFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return map[string]storagemodels.Schema{}, nil
		}
		return nil, fmt.Errorf("decode schema file: %w", err)
	}

	for name, schema := range doc.Schemas {
		if err := ValidateSchema(schema); err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
	}
	if doc.Schemas == nil {
		doc.Schemas = map[string]storagemodels.Schema{}
	}
	return doc.Schemas, nil
}
