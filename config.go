/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/memstore/errors"
)

// DefaultIDField is the struct field conventionally holding an entity identifier.
const DefaultIDField = "ID"

// IDFunc extracts the unique identifier of an entity.
type IDFunc[T any] func(entity T) string

// ValidationFunc decides whether an entity may enter the store.
// Returning false makes Set skip the entity silently.
type ValidationFunc[T any, M any] func(entity T, cfg Config[T, M], s *Store[T, M]) bool

// MethodsFunc builds the extension methods of a store. It is called once, from New.
type MethodsFunc[T any, M any] func(ctx MethodsContext[T, M]) (M, error)

// MethodsContext is what an extension methods factory receives.
//
// State is the live state of the store, not a copy. Writing to it bypasses
// validation and event notification.
type MethodsContext[T any, M any] struct {
	State  *State[T]
	Self   *Store[T, M]
	Config Config[T, M]
}

// NoMethods is the methods type of a store without extension methods.
type NoMethods = struct{}

// Config is supplied once to New and never changes afterwards.
type Config[T any, M any] struct {
	// Name identifies the store in logs and errors. Required.
	Name string
	// IDKey extracts the identifier of an entity. Required.
	IDKey IDFunc[T]
	// Validation is consulted for every entity passed to Set.
	Validation ValidationFunc[T, M]
	// Methods builds caller-defined methods on top of the store.
	Methods MethodsFunc[T, M]
}

func (c Config[T, M]) validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Name", "store name is required")
	}
	if c.IDKey == nil {
		return errors.NewValidationError("IDKey", "identifier selector is required")
	}
	return nil
}

// FieldID returns an IDFunc reading the named struct field of T, which must be
// a string or *string. Pointer entities are dereferenced. A nil pointer, a nil
// *string or a missing field yields "", which the store rejects.
func FieldID[T any](field string) IDFunc[T] {
	return func(entity T) string {
		v := reflect.ValueOf(entity)
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return ""
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return ""
		}
		f := v.FieldByName(field)
		if !f.IsValid() {
			return ""
		}
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return ""
			}
			f = f.Elem()
		}
		if f.Kind() != reflect.String {
			return ""
		}
		return f.String()
	}
}

// options holds optional store settings during construction.
type options struct {
	logger *zap.Logger
	newID  func() string
}

func defaultOptions() options {
	return options{newID: uuid.NewString}
}

// Option configures a Store during construction.
type Option func(*options) error

// WithLogger sets the zap logger used to report handler failures and
// validation rejections. Returns an error if the logger is nil.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.NewValidationError("logger", "logger cannot be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithIDGenerator replaces the generator of subscription identifiers.
// Generated identifiers must be unique for the lifetime of the store.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) error {
		if gen == nil {
			return errors.NewValidationError("idGenerator", "generator cannot be nil")
		}
		o.newID = gen
		return nil
	}
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return o, fmt.Errorf("option %d: %w", i, err)
		}
	}
	return o, nil
}
