/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller

import (
	"encoding"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/suparena/entitycrud/errors"
)

// KeyParser converts key text from a transport into a typed key.
type KeyParser[K comparable] func(text string) (K, error)

var keySeparator = regexp.MustCompile(`\s*,+\s*`)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// SplitKeys splits a comma-delimited key list. Repeated separators and
// surrounding whitespace produce no empty keys.
func SplitKeys(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	for _, token := range keySeparator.Split(text, -1) {
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// reflectKeyParser builds a parser for keyType, which must be K's dynamic
// type. It returns false when no textual form of keyType is known.
func reflectKeyParser[K comparable](keyType reflect.Type) (KeyParser[K], bool) {
	if keyType == nil {
		return nil, false
	}

	if reflect.PointerTo(keyType).Implements(textUnmarshalerType) {
		return func(text string) (K, error) {
			ptr := reflect.New(keyType)
			if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
				var zero K
				return zero, errors.NewValidationError("key", fmt.Sprintf("invalid %v %q: %v", keyType, text, err))
			}
			return ptr.Elem().Interface().(K), nil
		}, true
	}

	switch keyType.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, false
	}

	return func(text string) (K, error) {
		var zero K
		v := reflect.New(keyType).Elem()
		if err := setScalar(v, text); err != nil {
			return zero, errors.NewValidationError("key", fmt.Sprintf("invalid %v %q", keyType, text))
		}
		return v.Interface().(K), nil
	}, true
}

func setScalar(v reflect.Value, text string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported key kind %v", v.Kind())
	}
	return nil
}
