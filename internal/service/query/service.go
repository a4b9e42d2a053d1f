// Package query serves the read side: lot listings, per-lot spot state and
// the revenue/usage summaries. Everything here goes through the read-through
// cache; mutations elsewhere invalidate it after commit.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/report"
	"github.com/parkgo/parkgo/internal/repository"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
)

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	ttl   time.Duration
}

func New(store repository.Store, cache *redisrepo.Cache, ttl time.Duration) *Service {
	return &Service{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

// ListLots returns every lot, cached under one shared key.
func (s *Service) ListLots(ctx context.Context) ([]domain.Lot, error) {
	const op = "service.query.ListLots"

	lots, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyAllLots(), s.ttl,
		func(ctx context.Context) ([]domain.Lot, error) {
			return s.store.Lots().List(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lots, nil
}

// LotSpots returns the lot's spots with their current status.
func (s *Service) LotSpots(ctx context.Context, lotID int64) ([]domain.Spot, error) {
	const op = "service.query.LotSpots"

	spots, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyLotSpots(lotID), s.ttl,
		func(ctx context.Context) ([]domain.Spot, error) {
			if _, err := s.store.Lots().Get(ctx, lotID); err != nil {
				return nil, err
			}
			return s.store.Spots().ListByLot(ctx, lotID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrLotNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return spots, nil
}

// AdminSummary returns per-lot revenue and occupancy across all lots.
func (s *Service) AdminSummary(ctx context.Context, actor domain.Actor) ([]domain.LotSummary, error) {
	const op = "service.query.AdminSummary"

	if !actor.IsAdmin {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}

	sum, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyAdminSummary(), s.ttl,
		func(ctx context.Context) ([]domain.LotSummary, error) {
			lots, err := s.store.Lots().List(ctx)
			if err != nil {
				return nil, err
			}

			var spots []domain.Spot
			for _, lot := range lots {
				ls, err := s.store.Spots().ListByLot(ctx, lot.ID)
				if err != nil {
					return nil, err
				}
				spots = append(spots, ls...)
			}

			visits, err := s.store.Reservations().CompletedVisits(ctx)
			if err != nil {
				return nil, err
			}

			return report.BuildAdminSummary(lots, spots, visits), nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sum, nil
}

// UserSummary returns the user's completed visits grouped by lot.
func (s *Service) UserSummary(ctx context.Context, userID int64) ([]domain.UserLotSummary, error) {
	const op = "service.query.UserSummary"

	sum, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyUserSummary(userID), s.ttl,
		func(ctx context.Context) ([]domain.UserLotSummary, error) {
			visits, err := s.store.Reservations().CompletedVisits(ctx)
			if err != nil {
				return nil, err
			}
			return report.BuildUserSummary(userID, visits), nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sum, nil
}
