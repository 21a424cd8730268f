/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitycrud/errors"
)

// PartiQL on DynamoDB has no LIKE operator and writes IN lists with
// brackets, so statements using either are refused.
var unsupportedOperators = []string{" LIKE ", " IN ("}

func checkPartiQL(text string) error {
	upper := strings.ToUpper(text)
	for _, op := range unsupportedOperators {
		if strings.Contains(upper, op) {
			return errors.NewValidationError("statement", fmt.Sprintf("operator %q is not supported by DynamoDB", strings.TrimSpace(op)))
		}
	}
	return nil
}

func parameters(args []any) ([]types.AttributeValue, error) {
	if len(args) == 0 {
		return nil, nil
	}

	params := make([]types.AttributeValue, 0, len(args))
	for i, arg := range args {
		av, err := attributevalue.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameter %d: %w", i, err)
		}
		params = append(params, av)
	}
	return params, nil
}
