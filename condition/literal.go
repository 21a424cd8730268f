/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/suparena/entitycrud/errors"
)

var (
	numberLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	stringLiteral = regexp.MustCompile(`^'(?:[^'\\\x00]|'')*'$`)
)

// unsafeInString holds characters some dialects treat as escapes or
// terminators inside a quoted literal.
const unsafeInString = "\\\x00"

// literalList returns the inline list for an IN/NOT IN fragment. A string
// operand must already be a comma-joined list of numeric or single-quoted
// literals and is returned unchanged; a slice operand is rendered element by
// element.
func literalList(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", errors.NewValidationError(field, "IN list is empty")
	case string:
		return validateLiteralList(field, v)
	case []byte:
		return "", errors.NewValidationError(field, "IN list cannot be raw bytes")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", errors.NewValidationError(field, "IN operand must be a literal list or a slice")
	}
	if rv.Len() == 0 {
		return "", errors.NewValidationError(field, "IN list is empty")
	}

	literals := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		lit, err := renderLiteral(field, rv.Index(i))
		if err != nil {
			return "", err
		}
		literals = append(literals, lit)
	}
	return strings.Join(literals, ","), nil
}

func validateLiteralList(field, list string) (string, error) {
	if strings.TrimSpace(list) == "" {
		return "", errors.NewValidationError(field, "IN list is empty")
	}
	tokens, ok := splitLiterals(list)
	if !ok {
		return "", errors.NewValidationError(field, "unterminated string literal in IN list")
	}
	for _, tok := range tokens {
		if strings.ContainsAny(tok, unsafeInString) {
			return "", errors.NewValidationError(field, "IN literal "+strconv.Quote(tok)+" contains a backslash or NUL")
		}
		if !numberLiteral.MatchString(tok) && !stringLiteral.MatchString(tok) {
			return "", errors.NewValidationError(field, "invalid IN literal "+strconv.Quote(tok))
		}
	}
	return list, nil
}

// splitLiterals splits on commas outside single-quoted strings and trims each
// token. It reports false for an unterminated quote.
func splitLiterals(s string) ([]string, bool) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			cur.WriteByte(c)
			if c == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
				}
			}
		case c == '\'':
			inQuote = true
			cur.WriteByte(c)
		case c == ',':
			tokens = append(tokens, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuote {
		return nil, false
	}
	return append(tokens, strings.TrimSpace(cur.String())), true
}

func renderLiteral(field string, v reflect.Value) (string, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", errors.NewValidationError(field, "IN element is nil")
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		if strings.ContainsAny(v.String(), unsafeInString) {
			return "", errors.NewValidationError(field, "IN literal "+strconv.Quote(v.String())+" contains a backslash or NUL")
		}
		return "'" + strings.ReplaceAll(v.String(), "'", "''") + "'", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	default:
		return "", errors.NewValidationError(field, "unsupported IN element of type "+v.Type().String())
	}
}
