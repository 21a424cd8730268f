/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/suparena/entitycrud/condition"
	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/registry"
	"github.com/suparena/entitycrud/storagemodels"
)

// EntityService is the service surface a Controller drives.
// *entitycrud.Service satisfies it.
type EntityService[T storagemodels.Entity[K], K comparable] interface {
	Create(ctx context.Context, entity T) (bool, error)
	Update(ctx context.Context, entity T) (bool, error)
	Find(ctx context.Context, key K) (*T, error)
	List(ctx context.Context) ([]T, error)
	Remove(ctx context.Context, keys []K) bool
	Query(ctx context.Context, cond *condition.Condition) ([]T, error)
}

// Controller exposes an EntityService to transports. It coerces key text to
// the key type, and turns every service error into a Result instead of
// propagating it.
type Controller[T storagemodels.Entity[K], K comparable] struct {
	registry.Declaration[T, K]

	svc      EntityService[T, K]
	log      *log.Helper
	metrics  *Metrics
	name     string
	parseKey KeyParser[K]
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger    log.Logger
	keyParser any
	metrics   *Metrics
	name      string
}

// WithLogger sets the logger for failed operations.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeyParser replaces the built-in key coercion.
func WithKeyParser[K comparable](parser KeyParser[K]) Option {
	return func(o *options) {
		o.keyParser = parser
	}
}

// WithMetrics records every operation on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithName sets the entity label used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// New creates a Controller over svc.
func New[T storagemodels.Entity[K], K comparable](svc EntityService[T, K], opts ...Option) *Controller[T, K] {
	o := options{logger: log.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller[T, K]{
		svc:     svc,
		metrics: o.metrics,
		name:    o.name,
	}

	if c.name == "" {
		c.name = "entity"
		if entityType, ok := registry.ResolveGenericArgument(c, 0); ok {
			c.name = strings.ToLower(entityType.Name())
		}
	}
	c.log = log.NewHelper(log.With(o.logger, "module", "entitycrud/controller", "entity", c.name))

	if parser, ok := o.keyParser.(KeyParser[K]); ok {
		c.parseKey = parser
	} else if keyType, ok := registry.ResolveGenericArgument(c, 1); ok {
		c.parseKey, _ = reflectKeyParser[K](keyType)
	}
	if c.parseKey == nil {
		c.log.Warnf("no key coercion available, find and delete are disabled")
	}
	return c
}

// Name returns the entity label.
func (c *Controller[T, K]) Name() string {
	return c.name
}

// ParseKey coerces a single key.
func (c *Controller[T, K]) ParseKey(text string) (K, error) {
	var zero K
	if c.parseKey == nil {
		return zero, errors.NewNotResolvedError(c.name+" key", 1)
	}
	return c.parseKey(text)
}

// List returns every entity.
func (c *Controller[T, K]) List(ctx context.Context) (res Result[[]T]) {
	defer func() { c.metrics.observe(c.name, "list", res.Outcome) }()

	entities, err := c.svc.List(ctx)
	if err != nil {
		return failed[[]T](c, "list", err)
	}
	return succeed(entities)
}

// Find returns the entity under keyText. Empty key text or an unknown key
// type fail without calling the service.
func (c *Controller[T, K]) Find(ctx context.Context, keyText string) (res Result[*T]) {
	defer func() { c.metrics.observe(c.name, "find", res.Outcome) }()

	keyText = strings.TrimSpace(keyText)
	if keyText == "" {
		return fail[*T](errors.KindNotFound, "key is empty")
	}
	if c.parseKey == nil {
		return fail[*T](errors.KindNotResolved, "key type not resolved")
	}

	key, err := c.parseKey(keyText)
	if err != nil {
		return failure[*T](err)
	}

	entity, err := c.svc.Find(ctx, key)
	if err != nil {
		return failed[*T](c, "find", err)
	}
	if entity == nil {
		return fail[*T](errors.KindNotFound, "entity not found")
	}
	return succeed(entity)
}

// Create stores a new entity.
func (c *Controller[T, K]) Create(ctx context.Context, entity T) (res Result[bool]) {
	defer func() { c.metrics.observe(c.name, "create", res.Outcome) }()

	if isNil(entity) {
		return fail[bool](errors.KindValidation, "entity is nil")
	}

	created, err := c.svc.Create(ctx, entity)
	if err != nil {
		return failed[bool](c, "create", err)
	}
	return outcomeOf(created)
}

// Update replaces a stored entity with the submitted one. The entity must
// already be stored under its key.
func (c *Controller[T, K]) Update(ctx context.Context, entity T) (res Result[bool]) {
	defer func() { c.metrics.observe(c.name, "update", res.Outcome) }()

	if isNil(entity) {
		return fail[bool](errors.KindValidation, "entity is nil")
	}

	stored, err := c.svc.Find(ctx, entity.PrimaryKey())
	if err != nil {
		return failed[bool](c, "update", err)
	}
	if stored == nil {
		return fail[bool](errors.KindNotFound, "entity not found")
	}

	updated, err := c.svc.Update(ctx, entity)
	if err != nil {
		return failed[bool](c, "update", err)
	}
	return outcomeOf(updated)
}

// Delete removes every key in the comma-delimited keysText. It succeeds
// only when all of them were removed.
func (c *Controller[T, K]) Delete(ctx context.Context, keysText string) (res Result[bool]) {
	defer func() { c.metrics.observe(c.name, "delete", res.Outcome) }()

	tokens := SplitKeys(keysText)
	if len(tokens) == 0 {
		return fail[bool](errors.KindNotFound, "no keys given")
	}
	if c.parseKey == nil {
		return fail[bool](errors.KindNotResolved, "key type not resolved")
	}

	keys := make([]K, 0, len(tokens))
	for _, token := range tokens {
		key, err := c.parseKey(token)
		if err != nil {
			return failure[bool](err)
		}
		keys = append(keys, key)
	}

	return outcomeOf(c.svc.Remove(ctx, keys))
}

// Query returns the entities matching cond.
func (c *Controller[T, K]) Query(ctx context.Context, cond *condition.Condition) (res Result[[]T]) {
	defer func() { c.metrics.observe(c.name, "query", res.Outcome) }()

	entities, err := c.svc.Query(ctx, cond)
	if err != nil {
		return failed[[]T](c, "query", err)
	}
	return succeed(entities)
}

func failed[V any, T storagemodels.Entity[K], K comparable](c *Controller[T, K], op string, err error) Result[V] {
	c.log.Errorf("%s failed: %v", op, err)
	return failure[V](err)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
