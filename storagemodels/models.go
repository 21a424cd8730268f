/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Entity is any record type exposing a single primary-key value of type K.
// The key is immutable once assigned and unique within the entity's table.
type Entity[K comparable] interface {
	PrimaryKey() K
}

// Schema maps the logical field names of one entity type to its storage columns.
type Schema struct {
	// Table is the table (or DynamoDB table) holding the entity.
	Table string `yaml:"table"`
	// Key is the logical name of the primary-key field.
	Key string `yaml:"key"`
	// Columns maps logical field names to column names.
	Columns map[string]string `yaml:"columns"`
}

// Column returns the column name registered for a logical field name.
func (s Schema) Column(field string) (string, bool) {
	col, ok := s.Columns[field]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// KeyColumn returns the column holding the primary key.
// It falls back to the logical key name when no mapping exists.
func (s Schema) KeyColumn() string {
	if col, ok := s.Column(s.Key); ok {
		return col
	}
	return s.Key
}

// Statement is a parameterized query: clause text plus the values bound to its
// placeholders, in left-to-right placeholder order.
type Statement struct {
	Text string
	Args []any
}

// IsEmpty reports whether the statement carries no text.
func (s Statement) IsEmpty() bool {
	return s.Text == ""
}

// Append concatenates another statement, keeping argument order aligned with
// placeholder order.
func (s Statement) Append(other Statement) Statement {
	args := make([]any, 0, len(s.Args)+len(other.Args))
	args = append(args, s.Args...)
	args = append(args, other.Args...)
	return Statement{Text: s.Text + other.Text, Args: args}
}
