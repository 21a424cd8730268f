/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore interface
// for testing and for running without a database.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

// DataStore is an in-memory implementation of datastore.DataStore[T, K].
// Entities are listed in insertion order.
type DataStore[T storagemodels.Entity[K], K comparable] struct {
	mu         sync.RWMutex
	data       map[K]T
	order      []K
	statements []storagemodels.Statement

	queryFunc   func(ctx context.Context, stmt storagemodels.Statement) ([]T, error)
	saveError   error
	updateError error
	findError   error
	deleteError error
	deleteFor   map[K]error
}

// New creates a new mock DataStore
func New[T storagemodels.Entity[K], K comparable]() *DataStore[T, K] {
	return &DataStore[T, K]{
		data:      make(map[K]T),
		deleteFor: make(map[K]error),
	}
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T, K]) WithQueryFunc(f func(ctx context.Context, stmt storagemodels.Statement) ([]T, error)) *DataStore[T, K] {
	m.queryFunc = f
	return m
}

// WithSaveError makes Save operations return an error
func (m *DataStore[T, K]) WithSaveError(err error) *DataStore[T, K] {
	m.saveError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *DataStore[T, K]) WithUpdateError(err error) *DataStore[T, K] {
	m.updateError = err
	return m
}

// WithFindError makes Find operations return an error
func (m *DataStore[T, K]) WithFindError(err error) *DataStore[T, K] {
	m.findError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T, K]) WithDeleteError(err error) *DataStore[T, K] {
	m.deleteError = err
	return m
}

// WithDeleteErrorFor makes Delete fail for a single key only
func (m *DataStore[T, K]) WithDeleteErrorFor(key K, err error) *DataStore[T, K] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteFor[key] = err
	return m
}

// Save stores a new entity and returns its key
func (m *DataStore[T, K]) Save(ctx context.Context, entity T) (any, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := entity.PrimaryKey()
	if _, exists := m.data[key]; exists {
		return nil, errors.NewAlreadyExistsError(typeName[T](), fmt.Sprint(key))
	}

	m.data[key] = entity
	m.order = append(m.order, key)
	return key, nil
}

// Update replaces a stored entity; it affects zero rows when the key is unknown
func (m *DataStore[T, K]) Update(ctx context.Context, entity T) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := entity.PrimaryKey()
	if _, exists := m.data[key]; !exists {
		return 0, nil
	}
	m.data[key] = entity
	return 1, nil
}

// Find retrieves an entity by key, or nil when absent
func (m *DataStore[T, K]) Find(ctx context.Context, key K) (*T, error) {
	if m.findError != nil {
		return nil, m.findError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}
	return nil, nil
}

// List returns every stored entity in insertion order
func (m *DataStore[T, K]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]T, 0, len(m.order))
	for _, key := range m.order {
		results = append(results, m.data[key])
	}
	return results, nil
}

// Delete removes a stored entity
func (m *DataStore[T, K]) Delete(ctx context.Context, entity T) (int64, error) {
	if m.deleteError != nil {
		return 0, m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := entity.PrimaryKey()
	if err, ok := m.deleteFor[key]; ok {
		return 0, err
	}
	if _, exists := m.data[key]; !exists {
		return 0, nil
	}

	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// ExecuteQuery records the statement and runs the query function, or returns
// every stored entity when none is set
func (m *DataStore[T, K]) ExecuteQuery(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	m.mu.Lock()
	m.statements = append(m.statements, stmt)
	m.mu.Unlock()

	if m.queryFunc != nil {
		return m.queryFunc(ctx, stmt)
	}
	return m.List(ctx)
}

// Helper methods for testing

// Statements returns the statements passed to ExecuteQuery, oldest first
func (m *DataStore[T, K]) Statements() []storagemodels.Statement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storagemodels.Statement, len(m.statements))
	copy(out, m.statements)
	return out
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T, K]) GetData() map[K]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[K]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Count returns the number of stored entities
func (m *DataStore[T, K]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T, K]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[K]T)
	m.order = nil
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
