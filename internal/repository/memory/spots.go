package memory

import (
	"context"
	"sort"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type spotRepo struct {
	s *Store
}

func (r *spotRepo) CreateBatch(_ context.Context, lotID int64, count int) error {
	r.s.lock()
	defer r.s.unlock()

	for i := 0; i < count; i++ {
		r.s.d.nextSpotID++
		r.s.d.spots[r.s.d.nextSpotID] = domain.Spot{
			ID:     r.s.d.nextSpotID,
			LotID:  lotID,
			Status: domain.SpotAvailable,
		}
	}
	return nil
}

func (r *spotRepo) Get(_ context.Context, id int64) (*domain.Spot, error) {
	r.s.lock()
	defer r.s.unlock()

	spot, ok := r.s.d.spots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &spot, nil
}

func (r *spotRepo) ListByLot(_ context.Context, lotID int64) ([]domain.Spot, error) {
	r.s.lock()
	defer r.s.unlock()

	var spots []domain.Spot
	for _, id := range sortedIDs(r.s.d.spots) {
		if r.s.d.spots[id].LotID == lotID {
			spots = append(spots, r.s.d.spots[id])
		}
	}
	return spots, nil
}

func (r *spotRepo) FirstAvailable(_ context.Context, lotID int64) (int64, error) {
	r.s.lock()
	defer r.s.unlock()

	for _, id := range sortedIDs(r.s.d.spots) {
		spot := r.s.d.spots[id]
		if spot.LotID == lotID && spot.Status == domain.SpotAvailable {
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (r *spotRepo) CountByStatus(_ context.Context, lotID int64, status domain.SpotStatus) (int, error) {
	r.s.lock()
	defer r.s.unlock()

	n := 0
	for _, spot := range r.s.d.spots {
		if spot.LotID == lotID && spot.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *spotRepo) Allocate(ctx context.Context, id int64) error {
	return r.SetStatus(ctx, id, domain.SpotAvailable, domain.SpotOccupied)
}

func (r *spotRepo) Release(ctx context.Context, id int64) error {
	return r.SetStatus(ctx, id, domain.SpotOccupied, domain.SpotAvailable)
}

func (r *spotRepo) SetStatus(_ context.Context, id int64, from, to domain.SpotStatus) error {
	r.s.lock()
	defer r.s.unlock()

	spot, ok := r.s.d.spots[id]
	if !ok {
		return repository.ErrNotFound
	}
	if spot.Status != from {
		return repository.ErrConflict
	}
	spot.Status = to
	r.s.d.spots[id] = spot
	return nil
}

func (r *spotRepo) RemoveNewest(_ context.Context, lotID int64, count int) (int, error) {
	r.s.lock()
	defer r.s.unlock()

	var removable []int64
	for id, spot := range r.s.d.spots {
		if spot.LotID == lotID && spot.Status != domain.SpotOccupied {
			removable = append(removable, id)
		}
	}
	sort.Slice(removable, func(i, j int) bool { return removable[i] > removable[j] })

	if count > len(removable) {
		count = len(removable)
	}
	for _, id := range removable[:count] {
		delete(r.s.d.spots, id)
		for resID, res := range r.s.d.reservations {
			if res.SpotID == id {
				delete(r.s.d.reservations, resID)
			}
		}
	}
	return count, nil
}

func (r *spotRepo) Remove(_ context.Context, id int64) error {
	r.s.lock()
	defer r.s.unlock()

	spot, ok := r.s.d.spots[id]
	if !ok {
		return repository.ErrNotFound
	}
	if spot.Status == domain.SpotOccupied {
		return repository.ErrConflict
	}
	delete(r.s.d.spots, id)
	for resID, res := range r.s.d.reservations {
		if res.SpotID == id {
			delete(r.s.d.reservations, resID)
		}
	}
	return nil
}
