/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package validation provides reusable entity rules for a store's validation hook.
//
// Formats are checked against the go-openapi/strfmt default registry, so any
// format known to it ("email", "uuid", "date-time", "uri", "hostname", ...)
// can be used.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/memstore/errors"
)

// Rule checks one entity and returns a ValidationError when it fails.
type Rule[T any] func(entity T) error

// Required rejects entities whose field is empty or blank.
func Required[T any](field string, get func(T) string) Rule[T] {
	return func(entity T) error {
		if strings.TrimSpace(get(entity)) == "" {
			return errors.NewValidationError(field, "is required")
		}
		return nil
	}
}

// Format rejects entities whose field is not a valid instance of the named
// strfmt format. Empty values pass; combine with Required to forbid them.
func Format[T any](field, format string, get func(T) string) Rule[T] {
	return func(entity T) error {
		if !strfmt.Default.ContainsName(format) {
			return errors.NewValidationError(field, fmt.Sprintf("unknown format %q", format))
		}
		v := get(entity)
		if v == "" {
			return nil
		}
		if !strfmt.Default.Validates(format, v) {
			return errors.NewValidationError(field, fmt.Sprintf("%q is not a valid %s", v, format))
		}
		return nil
	}
}

// DateTime rejects entities whose timestamp is missing or zero.
func DateTime[T any](field string, get func(T) *strfmt.DateTime) Rule[T] {
	return func(entity T) error {
		dt := get(entity)
		if dt == nil || time.Time(*dt).IsZero() {
			return errors.NewValidationError(field, "timestamp is required")
		}
		return nil
	}
}

// All runs rules in order and returns the first failure.
func All[T any](rules ...Rule[T]) Rule[T] {
	return func(entity T) error {
		for _, r := range rules {
			if err := r(entity); err != nil {
				return err
			}
		}
		return nil
	}
}
