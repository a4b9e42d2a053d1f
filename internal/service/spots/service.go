// Package spots owns the administrative spot operations: toggling a spot
// between available and unavailable, and removing a single spot. Occupied
// spots reject both.
package spots

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

// Toggle flips a spot between available and unavailable.
func (s *Service) Toggle(ctx context.Context, actor domain.Actor, id int64) (domain.SpotStatus, error) {
	const op = "service.spots.Toggle"

	if !actor.IsAdmin {
		return "", fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}

	var to domain.SpotStatus
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		spot, err := tx.Spots().Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSpotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if spot.Status == domain.SpotOccupied {
			return fmt.Errorf("%s: %w", op, ErrSpotOccupied)
		}

		to = domain.SpotUnavailable
		if spot.Status == domain.SpotUnavailable {
			to = domain.SpotAvailable
		}

		if err := tx.Spots().SetStatus(ctx, id, spot.Status, to); err != nil {
			// A concurrent booking can occupy the spot between the read and
			// the conditional write; the store re-checks, so surface that as
			// the occupied conflict.
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrSpotOccupied)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})

	return to, err
}

// Remove deletes one spot and decrements the owning lot's declared count in
// the same transaction.
func (s *Service) Remove(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "service.spots.Remove"

	if !actor.IsAdmin {
		return fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		spot, err := tx.Spots().Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSpotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		lot, err := tx.Lots().GetForUpdate(ctx, spot.LotID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := tx.Spots().Remove(ctx, id); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrSpotOccupied)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		lot.NumberOfSpots--
		if err := tx.Lots().Update(ctx, *lot); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})
}
