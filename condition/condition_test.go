/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

var personSchema = storagemodels.Schema{
	Table: "people",
	Key:   "id",
	Columns: map[string]string{
		"id":   "id",
		"age":  "age",
		"name": "name",
		"nick": "nick_name",
	},
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		cond     *Condition
		wantText string
		wantArgs []any
	}{
		{
			name:     "Equals",
			cond:     New(Param{Name: "age", Association: Equals, Value: 30}),
			wantText: " WHERE age = ? ",
			wantArgs: []any{30},
		},
		{
			name:     "NotEquals",
			cond:     New().NotEquals("age", 30),
			wantText: " WHERE age <> ? ",
			wantArgs: []any{30},
		},
		{
			name:     "Like",
			cond:     New(Param{Name: "name", Association: Like, Value: "bob"}),
			wantText: " WHERE name LIKE ? ",
			wantArgs: []any{"%bob%"},
		},
		{
			name:     "LikeToKeepsCallerWildcards",
			cond:     New().LikeTo("name", "bo_%"),
			wantText: " WHERE name LIKE ? ",
			wantArgs: []any{"bo_%"},
		},
		{
			name:     "NotLike",
			cond:     New().NotLike("nick", "x"),
			wantText: " WHERE nick_name NOT LIKE ? ",
			wantArgs: []any{"%x%"},
		},
		{
			name:     "In",
			cond:     New(Param{Name: "id", Association: In, Value: "1,2,3"}),
			wantText: " WHERE id IN (1,2,3) ",
			wantArgs: []any{},
		},
		{
			name:     "NotInQuotedStrings",
			cond:     New().NotIn("name", "'a','o''neil', 'x,y'"),
			wantText: " WHERE name NOT IN ('a','o''neil', 'x,y') ",
			wantArgs: []any{},
		},
		{
			name:     "InFromSlice",
			cond:     New().In("name", []string{"al", "o'neil"}),
			wantText: " WHERE name IN ('al','o''neil') ",
			wantArgs: []any{},
		},
		{
			name:     "InFromDecodedJSONNumbers",
			cond:     New().In("age", []any{float64(18), float64(21.5)}),
			wantText: " WHERE age IN (18,21.5) ",
			wantArgs: []any{},
		},
		{
			name: "MixedKeepsPlaceholderOrder",
			cond: New().
				Equals("age", 30).
				In("id", "4,5").
				Like("name", "bob").
				NotEquals("nick", "z"),
			wantText: " WHERE age = ?  AND id IN (4,5)  AND name LIKE ?  AND nick_name <> ? ",
			wantArgs: []any{30, "%bob%", "z"},
		},
		{
			name:     "RepeatedField",
			cond:     New().NotEquals("age", 1).NotEquals("age", 2),
			wantText: " WHERE age <> ?  AND age <> ? ",
			wantArgs: []any{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Translate(personSchema, tt.cond)
			if err != nil {
				t.Fatalf("Translate failed: %v", err)
			}
			if stmt.Text != tt.wantText {
				t.Errorf("text = %q, want %q", stmt.Text, tt.wantText)
			}
			if !reflect.DeepEqual(stmt.Args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", stmt.Args, tt.wantArgs)
			}
		})
	}
}

func TestTranslateEmpty(t *testing.T) {
	for _, cond := range []*Condition{nil, New(), {}} {
		stmt, err := Translate(personSchema, cond)
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		if !stmt.IsEmpty() || len(stmt.Args) != 0 {
			t.Fatalf("expected empty statement, got %+v", stmt)
		}
	}
}

func TestTranslateErrors(t *testing.T) {
	t.Run("UnknownField", func(t *testing.T) {
		_, err := Translate(personSchema, New().Equals("email", "x"))
		if !errors.IsSchemaError(err) {
			t.Fatalf("expected schema error, got %v", err)
		}
	})

	t.Run("UnknownAssociation", func(t *testing.T) {
		_, err := Translate(personSchema, New(Param{Name: "age", Association: Association(99), Value: 1}))
		if !errors.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("LikeWithoutValue", func(t *testing.T) {
		_, err := Translate(personSchema, New().Like("name", nil))
		if !errors.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	injections := []any{
		"1); DROP TABLE people; --",
		"1 OR 1=1",
		"'a' OR 'b'='b'",
		"'unterminated",
		"1,,2",
		"",
		[]string{},
		[]any{map[string]int{}},
		42,
		[]byte("1,2"),
		[]string{`\`, `) OR 1=1 -- `},
		"'a\\', ') OR 1=1 -- '",
		"'a\x00b'",
		[]string{"a\x00b"},
		[]any{"ok", (*string)(nil)},
	}
	for _, value := range injections {
		_, err := Translate(personSchema, New().In("id", value))
		if !errors.IsValidationError(err) {
			t.Errorf("In(%#v): expected validation error, got %v", value, err)
		}
		_, err = Translate(personSchema, New().NotIn("name", value))
		if !errors.IsValidationError(err) {
			t.Errorf("NotIn(%#v): expected validation error, got %v", value, err)
		}
	}
}

func TestAssociationText(t *testing.T) {
	for a := Equals; a <= NotIn; a++ {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", a, err)
		}
		var back Association
		if err := back.UnmarshalText(text); err != nil || back != a {
			t.Fatalf("round trip of %s gave %v, %v", text, back, err)
		}
	}

	if a, err := ParseAssociation(" notlike "); err != nil || a != NotLike {
		t.Fatalf("ParseAssociation should be case-insensitive, got %v, %v", a, err)
	}
	if _, err := ParseAssociation("Between"); err == nil {
		t.Fatal("expected error for unknown association")
	}
	if _, err := Association(0).MarshalText(); err == nil {
		t.Fatal("expected error for zero association")
	}
}

func TestConditionJSON(t *testing.T) {
	raw := `{"params":[{"name":"age","association":"Equals","value":30},{"name":"id","association":"In","value":"1,2"}]}`

	var cond Condition
	if err := json.Unmarshal([]byte(raw), &cond); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cond.Len() != 2 || cond.Params[1].Association != In {
		t.Fatalf("unexpected condition %+v", cond)
	}

	stmt, err := Translate(personSchema, &cond)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if stmt.Text != " WHERE age = ?  AND id IN (1,2) " {
		t.Fatalf("unexpected text %q", stmt.Text)
	}
	if len(stmt.Args) != 1 || stmt.Args[0] != float64(30) {
		t.Fatalf("unexpected args %#v", stmt.Args)
	}

	if err := json.Unmarshal([]byte(`{"params":[{"name":"a","association":"Around"}]}`), &cond); err == nil {
		t.Fatal("expected error for unknown association name")
	}
}
