/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller

import (
	"github.com/suparena/entitycrud/errors"
)

// Outcome classifies a controller operation.
type Outcome string

const (
	OutcomeOK    Outcome = "OK"
	OutcomeFail  Outcome = "FAIL"
	OutcomeError Outcome = "ERROR"
)

// Result is what every controller operation returns. Value is only
// meaningful when Outcome is OutcomeOK.
type Result[V any] struct {
	Value   V           `json:"value,omitempty"`
	Outcome Outcome     `json:"outcome"`
	Kind    errors.Kind `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Text renders the outcome the way plain-text transports report it:
// "OK", "FAIL", or the error message.
func (r Result[V]) Text() string {
	switch r.Outcome {
	case OutcomeOK, OutcomeFail:
		return string(r.Outcome)
	default:
		if r.Message == "" {
			return string(OutcomeError)
		}
		return r.Message
	}
}

// OK reports whether the operation succeeded.
func (r Result[V]) OK() bool {
	return r.Outcome == OutcomeOK
}

func succeed[V any](v V) Result[V] {
	return Result[V]{Value: v, Outcome: OutcomeOK}
}

// outcomeOf maps a success flag to OK or FAIL.
func outcomeOf(success bool) Result[bool] {
	if success {
		return succeed(true)
	}
	return Result[bool]{Outcome: OutcomeFail}
}

func fail[V any](kind errors.Kind, message string) Result[V] {
	return Result[V]{Outcome: OutcomeFail, Kind: kind, Message: message}
}

// failure converts a service error. Caller mistakes (bad input, unknown
// keys or fields) are FAIL; everything else is ERROR.
func failure[V any](err error) Result[V] {
	kind := errors.KindOf(err)
	switch kind {
	case errors.KindValidation, errors.KindNotFound, errors.KindAlreadyExists,
		errors.KindSchema, errors.KindNotResolved:
		return fail[V](kind, err.Error())
	default:
		return Result[V]{Outcome: OutcomeError, Kind: kind, Message: err.Error()}
	}
}
