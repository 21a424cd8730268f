/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entitycrud/storagemodels"
)

// DataStore is the persistence collaborator for entity type T keyed by K.
type DataStore[T any, K comparable] interface {
	// Save stores a new entity and returns its identity; a nil identity means nothing was stored.
	Save(ctx context.Context, entity T) (any, error)

	// Update rewrites a stored entity and returns the number of affected rows.
	Update(ctx context.Context, entity T) (int64, error)

	// Find returns the entity stored under key, or nil when there is none.
	Find(ctx context.Context, key K) (*T, error)

	List(ctx context.Context) ([]T, error)

	// Delete removes a stored entity and returns the number of affected rows.
	Delete(ctx context.Context, entity T) (int64, error)

	// ExecuteQuery binds stmt.Args to stmt.Text, executes it and materializes the rows.
	ExecuteQuery(ctx context.Context, stmt storagemodels.Statement) ([]T, error)
}

// Dialect is optionally implemented by a DataStore whose query language needs
// a different "select all columns" prefix than the SQL default.
type Dialect interface {
	SelectAll(table string) string
}

// DefaultSelectAll is the base clause used when a DataStore is not a Dialect.
func DefaultSelectAll(table string) string {
	return "SELECT T.* FROM " + table + " T"
}
