// Package users covers the admin-facing user management: listing registered
// users and removing an account together with its reservation history.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/uow"
)

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
}

func New(store repository.Store, cache *redisrepo.Cache) *Service {
	return &Service{
		store: store,
		cache: cache,
		uow:   uow.New(store),
	}
}

func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	const op = "service.users.List"

	if !actor.IsAdmin {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}

	list, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "service.users.Get"

	u, err := s.store.Users().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// Delete removes a user and cascades their reservation history. An admin
// cannot delete their own account, and a user holding an open reservation
// stays until the vehicle has left; otherwise the cascade would strand the
// spot in occupied.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "service.users.Delete"

	if !actor.IsAdmin {
		return fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}
	if actor.UserID == id {
		return fmt.Errorf("%s: %w", op, ErrSelfDelete)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		if _, err := tx.Users().Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrUserNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		open, err := tx.Reservations().HasOpenByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if open {
			return fmt.Errorf("%s: %w", op, ErrUserHasOpen)
		}

		if err := tx.Users().Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})
}
