/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/entitycrud/errors"
)

// Declared is implemented by generic components that can report the type
// arguments they were instantiated with. The result must depend only on the
// dynamic type of the receiver, never on instance state.
type Declared interface {
	TypeArguments() []reflect.Type
}

// Declaration is a zero-size type witness. Embedding Declaration[T, K] in a
// generic struct makes the struct Declared with arguments [T, K].
type Declaration[T any, K any] struct{}

// TypeArguments returns the witnessed arguments in declaration order.
func (Declaration[T, K]) TypeArguments() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[T](), reflect.TypeFor[K]()}
}

// TypeBinding is the resolved (entity type, key type) pair of a generic component.
type TypeBinding struct {
	Entity reflect.Type
	Key    reflect.Type
}

// String renders the binding for logs.
func (b TypeBinding) String() string {
	return fmt.Sprintf("%v[%v]", b.Entity, b.Key)
}

var (
	argumentCache   = make(map[reflect.Type][]reflect.Type)
	argumentCacheMu sync.RWMutex
)

// ResolveGenericArgument returns the concrete type argument at index declared
// by instance. It reports false, and never panics, when the instance declares
// no arguments, the index is out of range, or the argument is not a concrete
// type (nil or an interface type).
func ResolveGenericArgument(instance any, index int) (reflect.Type, bool) {
	if instance == nil || index < 0 {
		return nil, false
	}

	args, ok := typeArguments(instance)
	if !ok || index >= len(args) {
		return nil, false
	}

	arg := args[index]
	if arg == nil || arg.Kind() == reflect.Interface {
		return nil, false
	}
	return arg, true
}

// ResolveBinding resolves arguments 0 (entity) and 1 (key) of instance.
func ResolveBinding(instance any) (TypeBinding, error) {
	owner := fmt.Sprintf("%T", instance)

	entity, ok := ResolveGenericArgument(instance, 0)
	if !ok {
		return TypeBinding{}, errors.NewNotResolvedError(owner, 0)
	}
	key, ok := ResolveGenericArgument(instance, 1)
	if !ok {
		return TypeBinding{}, errors.NewNotResolvedError(owner, 1)
	}
	return TypeBinding{Entity: entity, Key: key}, nil
}

// typeArguments memoizes TypeArguments per dynamic type.
func typeArguments(instance any) ([]reflect.Type, bool) {
	declared, ok := instance.(Declared)
	if !ok {
		return nil, false
	}

	typ := reflect.TypeOf(instance)

	argumentCacheMu.RLock()
	args, cached := argumentCache[typ]
	argumentCacheMu.RUnlock()
	if cached {
		return args, true
	}

	args = declared.TypeArguments()

	argumentCacheMu.Lock()
	argumentCache[typ] = args
	argumentCacheMu.Unlock()
	return args, true
}
