// Package lots owns the lot capacity lifecycle: creation, resize, delete.
// Every capacity change and the lot's declared spot count commit in the same
// transaction, so the declared-count == owned-spots invariant is never
// observable as violated between requests.
package lots

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

// Create adds a lot together with its initial set of available spots.
func (s *Service) Create(ctx context.Context, actor domain.Actor, lot domain.Lot) (int64, error) {
	const op = "service.lots.Create"

	if !actor.IsAdmin {
		return 0, fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}
	if lot.NumberOfSpots < 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCapacity)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		var err error
		id, err = tx.Lots().Create(ctx, lot)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := tx.Spots().CreateBatch(ctx, id, lot.NumberOfSpots); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})

	return id, err
}

// Update edits the lot's fields and reconciles its spot set against the new
// declared count. Shrinking removes the newest non-occupied spots; if fewer
// removable spots exist than the shrink requires, nothing is removed and the
// whole update fails with ErrCapacityFloor.
func (s *Service) Update(ctx context.Context, actor domain.Actor, lot domain.Lot) error {
	const op = "service.lots.Update"

	if !actor.IsAdmin {
		return fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}
	if lot.NumberOfSpots < 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidCapacity)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		cur, err := tx.Lots().GetForUpdate(ctx, lot.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrLotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		switch {
		case lot.NumberOfSpots < cur.NumberOfSpots:
			removable := cur.NumberOfSpots - lot.NumberOfSpots
			removed, err := tx.Spots().RemoveNewest(ctx, lot.ID, removable)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if removed < removable {
				// Rolls back the partial removal.
				return fmt.Errorf("%s: %w", op, ErrCapacityFloor)
			}
		case lot.NumberOfSpots > cur.NumberOfSpots:
			if err := tx.Spots().CreateBatch(ctx, lot.ID, lot.NumberOfSpots-cur.NumberOfSpots); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if err := tx.Lots().Update(ctx, lot); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})
}

// Delete removes a lot and all its spots. It fails with ErrLotOccupied while
// any spot is occupied; open reservations cannot exist on non-occupied spots,
// so only history is cascaded away.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "service.lots.Delete"

	if !actor.IsAdmin {
		return fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		if _, err := tx.Lots().GetForUpdate(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrLotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		occupied, err := tx.Spots().CountByStatus(ctx, id, domain.SpotOccupied)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if occupied > 0 {
			return fmt.Errorf("%s: %w", op, ErrLotOccupied)
		}

		if err := tx.Lots().Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Lot, error) {
	const op = "service.lots.Get"

	lot, err := s.store.Lots().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrLotNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lot, nil
}

func (s *Service) Search(ctx context.Context, location, pincode string) ([]domain.Lot, error) {
	const op = "service.lots.Search"

	found, err := s.store.Lots().Search(ctx, location, pincode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return found, nil
}

// FirstAvailableSpot returns the lowest-ID available spot of the lot.
func (s *Service) FirstAvailableSpot(ctx context.Context, lotID int64) (int64, error) {
	const op = "service.lots.FirstAvailableSpot"

	id, err := s.store.Spots().FirstAvailable(ctx, lotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrNoSpotAvailable)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
