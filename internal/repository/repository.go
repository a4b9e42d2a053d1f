package repository

import (
	"context"

	"github.com/parkgo/parkgo/internal/domain"
)

// Store is the persistence-session boundary. Services receive a Store handle
// instead of reaching for a shared global, so the core stays testable against
// the in-memory implementation.
type Store interface {
	Lots() LotRepo
	Spots() SpotRepo
	Reservations() ReservationRepo
	Users() UserRepo

	// RunTx runs fn inside a single transaction. The Store passed to fn is
	// scoped to that transaction; every mutation made through it commits
	// together or not at all.
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type LotRepo interface {
	Create(ctx context.Context, lot domain.Lot) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Lot, error)
	// GetForUpdate locks the lot row for the rest of the transaction, so
	// concurrent resizes on the same lot serialize instead of racing.
	GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error)
	List(ctx context.Context) ([]domain.Lot, error)
	Search(ctx context.Context, location, pincode string) ([]domain.Lot, error)
	Update(ctx context.Context, lot domain.Lot) error
	Delete(ctx context.Context, id int64) error
}

type SpotRepo interface {
	CreateBatch(ctx context.Context, lotID int64, count int) error
	Get(ctx context.Context, id int64) (*domain.Spot, error)
	ListByLot(ctx context.Context, lotID int64) ([]domain.Spot, error)
	FirstAvailable(ctx context.Context, lotID int64) (int64, error)
	CountByStatus(ctx context.Context, lotID int64, status domain.SpotStatus) (int, error)

	// Allocate transitions available -> occupied. The status check and the
	// transition happen as one conditional write; ErrConflict when the spot
	// is not currently available.
	Allocate(ctx context.Context, id int64) error
	// Release transitions occupied -> available.
	Release(ctx context.Context, id int64) error
	// SetStatus moves a spot from one administrative status to another.
	// ErrConflict when the current status is not `from`.
	SetStatus(ctx context.Context, id int64, from, to domain.SpotStatus) error
	// RemoveNewest deletes up to count non-occupied spots of the lot, newest
	// first, and returns how many were deleted.
	RemoveNewest(ctx context.Context, lotID int64, count int) (int, error)
	// Remove deletes one spot; ErrConflict when it is occupied.
	Remove(ctx context.Context, id int64) error
}

type ReservationRepo interface {
	Create(ctx context.Context, r domain.Reservation) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, r domain.Reservation) error

	HasOpenForVehicle(ctx context.Context, userID int64, vehicleNumber string) (bool, error)
	HasOpenByUser(ctx context.Context, userID int64) (bool, error)
	OpenBySpot(ctx context.Context, spotID int64) (*domain.ReservationDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error)
	// CompletedVisits returns every completed reservation joined with its
	// lot; the aggregation helpers in internal/report consume these rows.
	CompletedVisits(ctx context.Context) ([]domain.Visit, error)
}

type UserRepo interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListNonAdmins(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}
