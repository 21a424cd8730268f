/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"fmt"
	"strings"
)

// Association is the operator of a filter predicate.
type Association int

const (
	Equals Association = iota + 1
	NotEquals
	Like
	LikeTo
	NotLike
	In
	NotIn
)

var associationNames = map[Association]string{
	Equals:    "Equals",
	NotEquals: "NotEquals",
	Like:      "Like",
	LikeTo:    "LikeTo",
	NotLike:   "NotLike",
	In:        "In",
	NotIn:     "NotIn",
}

// String returns the association name, e.g. "NotLike".
func (a Association) String() string {
	if name, ok := associationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Association(%d)", int(a))
}

// Valid reports whether a is one of the declared associations.
func (a Association) Valid() bool {
	_, ok := associationNames[a]
	return ok
}

// ParseAssociation parses an association name case-insensitively.
func ParseAssociation(s string) (Association, error) {
	for a, name := range associationNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown association %q", s)
}

// MarshalText encodes a by its name.
func (a Association) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal %v", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an association name produced by MarshalText.
func (a *Association) UnmarshalText(text []byte) error {
	parsed, err := ParseAssociation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Param is one predicate: a logical field, an operator and its operand.
// For In and NotIn the operand is either a comma-joined literal list such as
// "1,2,3" or "'a','b'", or a slice of values.
type Param struct {
	Name        string      `json:"name"`
	Association Association `json:"association"`
	Value       any         `json:"value"`
}

// Condition is an ordered list of predicates joined with AND. Order decides
// clause order and bound-value order. The same field may appear many times.
// A nil *Condition is an empty filter.
type Condition struct {
	Params []Param `json:"params"`
}

// New returns a condition holding params in order.
func New(params ...Param) *Condition {
	c := &Condition{Params: make([]Param, 0, len(params))}
	c.Params = append(c.Params, params...)
	return c
}

// Add appends a predicate and returns c for chaining.
func (c *Condition) Add(name string, association Association, value any) *Condition {
	c.Params = append(c.Params, Param{Name: name, Association: association, Value: value})
	return c
}

// Equals matches rows whose field equals value.
func (c *Condition) Equals(name string, value any) *Condition {
	return c.Add(name, Equals, value)
}

// NotEquals matches rows whose field differs from value.
func (c *Condition) NotEquals(name string, value any) *Condition {
	return c.Add(name, NotEquals, value)
}

// Like matches value anywhere in the field.
func (c *Condition) Like(name string, value any) *Condition {
	return c.Add(name, Like, value)
}

// LikeTo matches a caller-supplied pattern, wildcards included.
func (c *Condition) LikeTo(name string, pattern string) *Condition {
	return c.Add(name, LikeTo, pattern)
}

// NotLike excludes rows whose field contains value.
func (c *Condition) NotLike(name string, value any) *Condition {
	return c.Add(name, NotLike, value)
}

// In matches rows whose field is one of values.
func (c *Condition) In(name string, values any) *Condition {
	return c.Add(name, In, values)
}

// NotIn excludes rows whose field is one of values.
func (c *Condition) NotIn(name string, values any) *Condition {
	return c.Add(name, NotIn, values)
}

// Len returns the number of predicates.
func (c *Condition) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Params)
}

// IsEmpty reports whether the condition filters nothing.
func (c *Condition) IsEmpty() bool {
	return c.Len() == 0
}
