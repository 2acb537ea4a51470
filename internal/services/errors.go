package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	apperrors "taskhero.com/taskhero/internal/errors"
	repository "taskhero.com/taskhero/internal/repositories"
)

// storeError turns a repository error into an API exception. Exceptions
// raised inside a transaction pass through untouched.
func storeError(op string, err error, notFound *apperrors.Exception) error {
	var appErr *apperrors.Exception
	switch {
	case errors.As(err, &appErr):
		return appErr
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, repository.ErrOptimisticLock):
		return apperrors.ErrOptimisticLock
	}

	log.Printf("%s: %v", op, err)
	return apperrors.Upstream("Failed to " + op)
}
