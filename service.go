/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitycrud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/suparena/entitycrud/condition"
	"github.com/suparena/entitycrud/datastore"
	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/registry"
	"github.com/suparena/entitycrud/storagemodels"
)

// Service provides create/update/find/list/remove/query for entity type T
// keyed by K on top of a DataStore. Its type binding is resolved once at
// construction and never changes afterwards.
type Service[T storagemodels.Entity[K], K comparable] struct {
	registry.Declaration[T, K]

	store   datastore.DataStore[T, K]
	log     *log.Helper
	schema  *storagemodels.Schema
	binding registry.TypeBinding
	bindErr error

	// schemaErr is set when the WithSchema override fails validation.
	schemaErr error
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger log.Logger
	schema *storagemodels.Schema
}

// WithLogger sets the logger used for per-key failures and resolution warnings.
func WithLogger(logger log.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithSchema pins the schema used by Query instead of the registry lookup.
func WithSchema(schema storagemodels.Schema) Option {
	return func(o *serviceOptions) {
		o.schema = &schema
	}
}

// NewService builds a Service over store.
func NewService[T storagemodels.Entity[K], K comparable](store datastore.DataStore[T, K], opts ...Option) *Service[T, K] {
	o := serviceOptions{logger: log.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service[T, K]{
		store:  store,
		log:    log.NewHelper(log.With(o.logger, "module", "entitycrud/service")),
		schema: o.schema,
	}

	s.binding, s.bindErr = registry.ResolveBinding(s)
	if s.bindErr != nil {
		s.log.Warnf("type binding unavailable, query disabled: %v", s.bindErr)
	}
	if s.schema != nil {
		if s.schemaErr = registry.ValidateSchema(*s.schema); s.schemaErr != nil {
			s.log.Warnf("schema override rejected, query disabled: %v", s.schemaErr)
		}
	}
	return s
}

// Binding returns the resolved entity/key types, or false when resolution failed.
func (s *Service[T, K]) Binding() (registry.TypeBinding, bool) {
	return s.binding, s.bindErr == nil
}

// Create stores a new entity. It reports true when the store returned an identity.
func (s *Service[T, K]) Create(ctx context.Context, entity T) (bool, error) {
	if isNil(entity) {
		return false, errors.NewValidationError("", "entity is nil")
	}

	id, err := s.store.Save(ctx, entity)
	if err != nil {
		return false, errors.NewPersistenceError("save", err)
	}
	return !isNil(id), nil
}

// Update rewrites a stored entity. It reports true when exactly one row changed.
func (s *Service[T, K]) Update(ctx context.Context, entity T) (bool, error) {
	if isNil(entity) {
		return false, errors.NewValidationError("", "entity is nil")
	}

	n, err := s.store.Update(ctx, entity)
	if err != nil {
		return false, errors.NewPersistenceError("update", err)
	}
	return n == 1, nil
}

// Find returns the entity stored under key, or nil when there is none.
func (s *Service[T, K]) Find(ctx context.Context, key K) (*T, error) {
	entity, err := s.store.Find(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("find", err)
	}
	return entity, nil
}

// FindAll looks up each key in order. The result has one slot per key and a
// nil slot for every missing key. A nil key list yields a nil result.
func (s *Service[T, K]) FindAll(ctx context.Context, keys []K) ([]*T, error) {
	if keys == nil {
		return nil, nil
	}

	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		entity, err := s.Find(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// List returns all entities of type T.
func (s *Service[T, K]) List(ctx context.Context) ([]T, error) {
	entities, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("list", err)
	}
	return entities, nil
}

// Remove deletes every key independently. A failing key is logged and the
// batch continues; deletions already applied stay applied. It reports true
// only when every key was deleted. A nil key list reports false.
func (s *Service[T, K]) Remove(ctx context.Context, keys []K) bool {
	if keys == nil {
		return false
	}

	var removed int64
	for _, key := range keys {
		n, err := s.removeOne(ctx, key)
		if err != nil {
			s.log.Errorf("remove %v: %v", key, err)
			continue
		}
		removed += n
	}
	return removed == int64(len(keys))
}

func (s *Service[T, K]) removeOne(ctx context.Context, key K) (int64, error) {
	entity, err := s.Find(ctx, key)
	if err != nil {
		return 0, err
	}
	if entity == nil {
		return 0, errors.NewNotFoundError(s.entityName(), fmt.Sprint(key))
	}

	n, err := s.store.Delete(ctx, *entity)
	if err != nil {
		return 0, errors.NewPersistenceError("delete", err)
	}
	return n, nil
}

// Query selects the entities matching cond. It fails with a NotResolvedError
// when the entity type is unknown and with a SchemaError when no schema is
// registered for it.
func (s *Service[T, K]) Query(ctx context.Context, cond *condition.Condition) ([]T, error) {
	if s.bindErr != nil {
		return nil, s.bindErr
	}

	schema, err := s.schemaFor()
	if err != nil {
		return nil, err
	}

	clause, err := condition.Translate(schema, cond)
	if err != nil {
		return nil, err
	}

	base := datastore.DefaultSelectAll(schema.Table)
	if d, ok := s.store.(datastore.Dialect); ok {
		base = d.SelectAll(schema.Table)
	}
	stmt := storagemodels.Statement{Text: base}.Append(clause)

	entities, err := s.store.ExecuteQuery(ctx, stmt)
	if err != nil {
		return nil, errors.NewPersistenceError("query", err)
	}
	return entities, nil
}

func (s *Service[T, K]) schemaFor() (storagemodels.Schema, error) {
	if s.schema != nil {
		if s.schemaErr != nil {
			return storagemodels.Schema{}, errors.NewSchemaError(s.entityName(), "")
		}
		return *s.schema, nil
	}
	schema, ok := registry.LookupSchema(s.binding.Entity)
	if !ok {
		return storagemodels.Schema{}, errors.NewSchemaError(s.entityName(), "")
	}
	return schema, nil
}

func (s *Service[T, K]) entityName() string {
	if s.bindErr == nil {
		return s.binding.Entity.String()
	}
	return reflect.TypeFor[T]().String()
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
