package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrOptimisticLock = errors.New("optimistic locking conflict")
	ErrDuplicate      = errors.New("duplicate record")
)

// Store groups the repositories that share one database handle, so callers
// can run several of them inside a single transaction.
type Store struct {
	db     *gorm.DB
	Tasks  *TaskRepository
	Offers *OfferRepository
	Users  *UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		Tasks:  NewTaskRepository(db),
		Offers: NewOfferRepository(db),
		Users:  NewUserRepository(db),
	}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
