package memory

import (
	"context"
	"strings"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type lotRepo struct {
	s *Store
}

func (r *lotRepo) Create(_ context.Context, lot domain.Lot) (int64, error) {
	r.s.lock()
	defer r.s.unlock()

	r.s.d.nextLotID++
	lot.ID = r.s.d.nextLotID
	r.s.d.lots[lot.ID] = lot
	return lot.ID, nil
}

func (r *lotRepo) Get(_ context.Context, id int64) (*domain.Lot, error) {
	r.s.lock()
	defer r.s.unlock()

	lot, ok := r.s.d.lots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &lot, nil
}

func (r *lotRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error) {
	// The transaction lock already serializes writers.
	return r.Get(ctx, id)
}

func (r *lotRepo) List(_ context.Context) ([]domain.Lot, error) {
	r.s.lock()
	defer r.s.unlock()

	var lots []domain.Lot
	for _, id := range sortedIDs(r.s.d.lots) {
		lots = append(lots, r.s.d.lots[id])
	}
	return lots, nil
}

func (r *lotRepo) Search(_ context.Context, location, pincode string) ([]domain.Lot, error) {
	r.s.lock()
	defer r.s.unlock()

	var lots []domain.Lot
	for _, id := range sortedIDs(r.s.d.lots) {
		lot := r.s.d.lots[id]
		if location != "" && !strings.Contains(strings.ToLower(lot.LocationName), strings.ToLower(location)) {
			continue
		}
		if pincode != "" && !strings.HasPrefix(lot.Pincode, pincode) {
			continue
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

func (r *lotRepo) Update(_ context.Context, lot domain.Lot) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.d.lots[lot.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.d.lots[lot.ID] = lot
	return nil
}

func (r *lotRepo) Delete(_ context.Context, id int64) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.d.lots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.d.lots, id)

	// FK cascade: spots of the lot, then reservations of those spots.
	for spotID, spot := range r.s.d.spots {
		if spot.LotID != id {
			continue
		}
		delete(r.s.d.spots, spotID)
		for resID, res := range r.s.d.reservations {
			if res.SpotID == spotID {
				delete(r.s.d.reservations, resID)
			}
		}
	}
	return nil
}
