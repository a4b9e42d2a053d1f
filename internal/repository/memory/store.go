// Package memory holds an in-memory repository.Store used by tests and
// local development. Transactions take a coarse lock and restore a snapshot
// on error, which gives the same all-or-nothing semantics the postgres
// store gets from real transactions.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type data struct {
	lots         map[int64]domain.Lot
	spots        map[int64]domain.Spot
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User

	nextLotID  int64
	nextSpotID int64
	nextResID  int64
	nextUserID int64
}

func (d *data) clone() *data {
	cp := &data{
		lots:         make(map[int64]domain.Lot, len(d.lots)),
		spots:        make(map[int64]domain.Spot, len(d.spots)),
		reservations: make(map[int64]domain.Reservation, len(d.reservations)),
		users:        make(map[int64]domain.User, len(d.users)),
		nextLotID:    d.nextLotID,
		nextSpotID:   d.nextSpotID,
		nextResID:    d.nextResID,
		nextUserID:   d.nextUserID,
	}
	for k, v := range d.lots {
		cp.lots[k] = v
	}
	for k, v := range d.spots {
		cp.spots[k] = v
	}
	for k, v := range d.reservations {
		cp.reservations[k] = v
	}
	for k, v := range d.users {
		cp.users[k] = v
	}
	return cp
}

type Store struct {
	mu   *sync.Mutex
	d    *data
	inTx bool
}

func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		d: &data{
			lots:         make(map[int64]domain.Lot),
			spots:        make(map[int64]domain.Spot),
			reservations: make(map[int64]domain.Reservation),
			users:        make(map[int64]domain.User),
		},
	}
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *Store) RunTx(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Store) error,
) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()

	if err := fn(ctx, &Store{mu: s.mu, d: s.d, inTx: true}); err != nil {
		*s.d = *snapshot
		return err
	}

	return nil
}

func (s *Store) Lots() repository.LotRepo                 { return &lotRepo{s: s} }
func (s *Store) Spots() repository.SpotRepo               { return &spotRepo{s: s} }
func (s *Store) Reservations() repository.ReservationRepo { return &reservationRepo{s: s} }
func (s *Store) Users() repository.UserRepo               { return &userRepo{s: s} }

// AddUser seeds a user record. User signup belongs to the auth collaborator,
// so the repository interface has no Create; tests seed through this.
func (s *Store) AddUser(u domain.User) int64 {
	s.lock()
	defer s.unlock()

	s.d.nextUserID++
	u.ID = s.d.nextUserID
	s.d.users[u.ID] = u
	return u.ID
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
