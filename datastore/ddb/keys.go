/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KeyTemplate maps each key attribute of the table to a template such as
// "USER#{id}". Macros name attributes of the marshaled entity. A template
// that is a single macro keeps the attribute's type; any other template
// yields a string.
type KeyTemplate map[string]string

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// attributes returns the key attribute names in a stable order.
func (t KeyTemplate) attributes() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fromItem expands every template against the attributes of item.
func (t KeyTemplate) fromItem(item map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	key := make(map[string]types.AttributeValue, len(t))
	for name, template := range t {
		if attr, ok := singleMacro(template); ok {
			switch value := item[attr].(type) {
			case *types.AttributeValueMemberS, *types.AttributeValueMemberN:
				key[name] = value
				continue
			}
		}

		var missing []string
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			attr := strings.Trim(macro, "{}")
			value, ok := scalarString(item[attr])
			if !ok {
				missing = append(missing, attr)
			}
			return value
		})
		if len(missing) > 0 {
			return nil, fmt.Errorf("key attribute %s: no scalar value for %s", name, strings.Join(missing, ", "))
		}
		key[name] = &types.AttributeValueMemberS{Value: expanded}
	}
	return key, nil
}

// fromKey expands every template with the key's text in place of each macro.
func (t KeyTemplate) fromKey(key any) map[string]types.AttributeValue {
	text := fmt.Sprint(key)
	out := make(map[string]types.AttributeValue, len(t))
	for name, template := range t {
		if _, ok := singleMacro(template); ok && isNumber(key) {
			out[name] = &types.AttributeValueMemberN{Value: text}
			continue
		}
		out[name] = &types.AttributeValueMemberS{Value: macroPattern.ReplaceAllLiteralString(template, text)}
	}
	return out
}

func singleMacro(template string) (string, bool) {
	loc := macroPattern.FindStringSubmatchIndex(template)
	if loc == nil || loc[0] != 0 || loc[1] != len(template) {
		return "", false
	}
	return template[loc[2]:loc[3]], true
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func scalarString(av types.AttributeValue) (string, bool) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, true
	case *types.AttributeValueMemberN:
		return tv.Value, true
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value), true
	default:
		return "", false
	}
}
