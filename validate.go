/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"go.uber.org/zap"

	"github.com/suparena/memstore/validation"
)

// Validate turns rules into a ValidationFunc. The first failing rule rejects
// the entity; its error is logged at debug level through the store's logger.
func Validate[T any, M any](rules ...validation.Rule[T]) ValidationFunc[T, M] {
	check := validation.All(rules...)
	return func(entity T, cfg Config[T, M], s *Store[T, M]) bool {
		if err := check(entity); err != nil {
			s.Logger().Debug("entity failed validation",
				zap.String("entity", cfg.IDKey(entity)),
				zap.Error(err),
			)
			return false
		}
		return true
	}
}
