/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitycrud

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitycrud/storagemodels"
)

// Catalog holds one Service per entity type under a unique name, so that
// transports can enumerate what they expose.
type Catalog struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
	names    map[string]reflect.Type
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		services: make(map[reflect.Type]any),
		names:    make(map[string]reflect.Type),
	}
}

// RegisterService adds svc for entity type T under name
func RegisterService[T storagemodels.Entity[K], K comparable](c *Catalog, name string, svc *Service[T, K]) error {
	if svc == nil {
		return fmt.Errorf("service for %q is nil", name)
	}

	typ := reflect.TypeFor[T]()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[typ]; exists {
		return fmt.Errorf("service for %v already registered", typ)
	}
	if _, exists := c.names[name]; exists {
		return fmt.Errorf("service with name %q already registered", name)
	}

	c.services[typ] = svc
	c.names[name] = typ
	return nil
}

// ServiceFor retrieves the Service registered for entity type T
func ServiceFor[T storagemodels.Entity[K], K comparable](c *Catalog) (*Service[T, K], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	typ := reflect.TypeFor[T]()
	svc, exists := c.services[typ]
	if !exists {
		return nil, fmt.Errorf("service for %v not found", typ)
	}

	typed, ok := svc.(*Service[T, K])
	if !ok {
		return nil, fmt.Errorf("service for %v has key type other than %v", typ, reflect.TypeFor[K]())
	}
	return typed, nil
}

// RemoveService deletes the Service registered for entity type T
func RemoveService[T storagemodels.Entity[K], K comparable](c *Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	typ := reflect.TypeFor[T]()
	if _, exists := c.services[typ]; !exists {
		return fmt.Errorf("service for %v not found", typ)
	}

	delete(c.services, typ)
	for name, t := range c.names {
		if t == typ {
			delete(c.names, name)
		}
	}
	return nil
}

// Names returns all registered names in sorted order
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeOf returns the entity type registered under name
func (c *Catalog) TypeOf(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	typ, ok := c.names[name]
	return typ, ok
}
