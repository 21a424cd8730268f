/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"fmt"
	"strings"

	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

const (
	clauseIntroducer = " WHERE "
	clauseSeparator  = " AND "
)

// Translate renders cond as a parameterized WHERE clause against schema.
//
// Each predicate becomes one fragment in order. Placeholder operators bind
// exactly one value: Equals and NotEquals bind the operand, Like and NotLike
// bind "%operand%", LikeTo binds the operand verbatim. In and NotIn embed a
// validated literal list and bind nothing. An empty or nil condition yields
// an empty statement.
func Translate(schema storagemodels.Schema, cond *Condition) (storagemodels.Statement, error) {
	if cond.IsEmpty() {
		return storagemodels.Statement{}, nil
	}

	fragments := make([]string, 0, cond.Len())
	args := make([]any, 0, cond.Len())

	for _, p := range cond.Params {
		col, ok := schema.Column(p.Name)
		if !ok {
			return storagemodels.Statement{}, errors.NewSchemaError(schema.Table, p.Name)
		}

		switch p.Association {
		case Equals:
			fragments = append(fragments, col+" = ? ")
			args = append(args, p.Value)
		case NotEquals:
			fragments = append(fragments, col+" <> ? ")
			args = append(args, p.Value)
		case Like, NotLike, LikeTo:
			if p.Value == nil {
				return storagemodels.Statement{}, errors.NewValidationError(p.Name, p.Association.String()+" requires a value")
			}
			op := " LIKE ? "
			if p.Association == NotLike {
				op = " NOT LIKE ? "
			}
			fragments = append(fragments, col+op)
			if p.Association == LikeTo {
				args = append(args, p.Value)
			} else {
				args = append(args, fmt.Sprintf("%%%v%%", p.Value))
			}
		case In, NotIn:
			list, err := literalList(p.Name, p.Value)
			if err != nil {
				return storagemodels.Statement{}, err
			}
			op := " IN ("
			if p.Association == NotIn {
				op = " NOT IN ("
			}
			fragments = append(fragments, col+op+list+") ")
		default:
			return storagemodels.Statement{}, errors.NewValidationError(p.Name, "unsupported association "+p.Association.String())
		}
	}

	return storagemodels.Statement{
		Text: clauseIntroducer + strings.Join(fragments, clauseSeparator),
		Args: args,
	}, nil
}
