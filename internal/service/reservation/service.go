// Package reservation drives the pending -> active -> completed lifecycle of
// a parking reservation. Booking allocates the spot and freezes the lot's
// price into the reservation inside one transaction; release puts the spot
// back in the same transaction that completes the reservation.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/tasks"
	"github.com/parkgo/parkgo/internal/uow"
)

// Enqueuer hands tasks to the background worker. Enqueueing happens only
// after commit and failures are swallowed: a lost reminder is acceptable, a
// reminder for a rolled-back booking is not.
type Enqueuer interface {
	Enqueue(ctx context.Context, typ string, payload any) error
}

// Limiter throttles booking attempts per user.
type Limiter interface {
	Allow(ctx context.Context, id string) (allowed bool, current int64, retryAfter time.Duration, err error)
}

type Service struct {
	store   repository.Store
	cache   *redisrepo.Cache
	queue   Enqueuer
	limiter Limiter
	uow     *uow.UoW
}

// New builds the service. queue and limiter may be nil; booking then skips
// the reminder enqueue and the rate limit respectively.
func New(store repository.Store, cache *redisrepo.Cache, queue Enqueuer, limiter Limiter) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		queue:   queue,
		limiter: limiter,
		uow:     uow.New(store),
	}
}

// Book reserves the given spot for the user at the lot's current price. The
// availability check and the status flip are a single conditional write, so
// two concurrent bookings of the same spot cannot both succeed.
func (s *Service) Book(ctx context.Context, userID, spotID int64, vehicleNumber string) (int64, error) {
	const op = "service.reservation.Book"

	if s.limiter != nil {
		ok, _, _, err := s.limiter.Allow(ctx, strconv.FormatInt(userID, 10))
		// A broken limiter must not take bookings down with it.
		if err == nil && !ok {
			return 0, fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		open, err := tx.Reservations().HasOpenForVehicle(ctx, userID, vehicleNumber)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if open {
			return fmt.Errorf("%s: %w", op, ErrDuplicateVehicle)
		}

		spot, err := tx.Spots().Get(ctx, spotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSpotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		lot, err := tx.Lots().Get(ctx, spot.LotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSpotUnavailable)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := tx.Spots().Allocate(ctx, spotID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrSpotUnavailable)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		id, err = tx.Reservations().Create(ctx, domain.Reservation{
			SpotID:           spotID,
			UserID:           userID,
			VehicleNumber:    vehicleNumber,
			ParkingCost:      lot.Price,
			ParkingTimestamp: time.Now(),
			Status:           domain.ReservationPending,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
			if s.queue != nil {
				_ = s.queue.Enqueue(ctx, tasks.TypeParkingReminder, tasks.ParkingReminderPayload{
					UserID: userID,
					LotID:  spot.LotID,
					SpotID: spotID,
				})
			}
		})
		return nil
	})

	return id, err
}

// Advance moves the reservation one step along pending -> active ->
// completed. Completing records the leaving time and releases the spot in
// the same transaction.
func (s *Service) Advance(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "service.reservation.Advance"

	var out *domain.Reservation
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		r, err := tx.Reservations().GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrReservationNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		switch r.Status {
		case domain.ReservationPending:
			r.Status = domain.ReservationActive
		case domain.ReservationActive:
			now := time.Now()
			r.Status = domain.ReservationCompleted
			r.LeavingTimestamp = &now
			if err := tx.Spots().Release(ctx, r.SpotID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		default:
			return fmt.Errorf("%s: %w", op, ErrAlreadyCompleted)
		}

		if err := tx.Reservations().Update(ctx, *r); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		out = r
		after(func(ctx context.Context) {
			_ = s.cache.InvalidateAll(ctx)
		})
		return nil
	})

	return out, err
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error) {
	const op = "service.reservation.ListByUser"

	list, err := s.store.Reservations().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// ActiveBySpot resolves the open reservation currently holding a spot.
func (s *Service) ActiveBySpot(ctx context.Context, spotID int64) (*domain.ReservationDetail, error) {
	const op = "service.reservation.ActiveBySpot"

	d, err := s.store.Reservations().OpenBySpot(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoActiveReservation)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}
