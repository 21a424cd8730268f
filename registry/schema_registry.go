/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/suparena/entitycrud/storagemodels"
)

// schemaRegistry maps Go types to their table/column schemas.
var (
	schemaRegistry = make(map[reflect.Type]storagemodels.Schema)
	mu             sync.RWMutex
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RegisterSchema associates a Go type T with a table/column schema.
// A later registration for the same type replaces the earlier one.
func RegisterSchema[T any](schema storagemodels.Schema) error {
	return RegisterSchemaFor(reflect.TypeFor[T](), schema)
}

// RegisterSchemaFor associates the given type with a table/column schema.
func RegisterSchemaFor(t reflect.Type, schema storagemodels.Schema) error {
	if t == nil {
		return fmt.Errorf("schema registry: nil type")
	}
	if err := ValidateSchema(schema); err != nil {
		return fmt.Errorf("schema registry: %v: %w", t, err)
	}

	columns := make(map[string]string, len(schema.Columns))
	for field, col := range schema.Columns {
		columns[field] = col
	}
	schema.Columns = columns

	mu.Lock()
	defer mu.Unlock()
	schemaRegistry[t] = schema
	return nil
}

// GetSchema retrieves the schema for type T, if any.
func GetSchema[T any]() (storagemodels.Schema, bool) {
	return LookupSchema(reflect.TypeFor[T]())
}

// LookupSchema retrieves the schema registered for t, if any.
func LookupSchema(t reflect.Type) (storagemodels.Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemaRegistry[t]
	return s, ok
}

// UnregisterSchema removes the schema registered for type T.
func UnregisterSchema[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(schemaRegistry, reflect.TypeFor[T]())
}

// ValidateSchema checks that table and column names are plain SQL identifiers,
// since both are interpolated into clause text.
func ValidateSchema(schema storagemodels.Schema) error {
	if !identifierPattern.MatchString(schema.Table) {
		return fmt.Errorf("invalid table name %q", schema.Table)
	}
	for field, col := range schema.Columns {
		if !identifierPattern.MatchString(col) {
			return fmt.Errorf("invalid column name %q for field %q", col, field)
		}
	}
	return nil
}
