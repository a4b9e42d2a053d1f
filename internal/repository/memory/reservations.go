package memory

import (
	"context"
	"sort"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type reservationRepo struct {
	s *Store
}

func (r *reservationRepo) Create(_ context.Context, res domain.Reservation) (int64, error) {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.d.spots[res.SpotID]; !ok {
		return 0, repository.ErrConflict
	}

	r.s.d.nextResID++
	res.ID = r.s.d.nextResID
	r.s.d.reservations[res.ID] = res
	return res.ID, nil
}

func (r *reservationRepo) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.lock()
	defer r.s.unlock()

	res, ok := r.s.d.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &res, nil
}

func (r *reservationRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.Get(ctx, id)
}

func (r *reservationRepo) Update(_ context.Context, res domain.Reservation) error {
	r.s.lock()
	defer r.s.unlock()

	stored, ok := r.s.d.reservations[res.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = res.Status
	stored.LeavingTimestamp = res.LeavingTimestamp
	r.s.d.reservations[res.ID] = stored
	return nil
}

func (r *reservationRepo) HasOpenForVehicle(_ context.Context, userID int64, vehicleNumber string) (bool, error) {
	r.s.lock()
	defer r.s.unlock()

	for _, res := range r.s.d.reservations {
		if res.UserID == userID && res.VehicleNumber == vehicleNumber && res.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationRepo) HasOpenByUser(_ context.Context, userID int64) (bool, error) {
	r.s.lock()
	defer r.s.unlock()

	for _, res := range r.s.d.reservations {
		if res.UserID == userID && res.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationRepo) OpenBySpot(_ context.Context, spotID int64) (*domain.ReservationDetail, error) {
	r.s.lock()
	defer r.s.unlock()

	for _, id := range sortedIDs(r.s.d.reservations) {
		res := r.s.d.reservations[id]
		if res.SpotID == spotID && res.Status.Open() {
			d := r.detail(res)
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *reservationRepo) ListByUser(_ context.Context, userID int64) ([]domain.ReservationDetail, error) {
	r.s.lock()
	defer r.s.unlock()

	var out []domain.ReservationDetail
	for _, id := range sortedIDs(r.s.d.reservations) {
		res := r.s.d.reservations[id]
		if res.UserID == userID {
			out = append(out, r.detail(res))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParkingTimestamp.After(out[j].ParkingTimestamp)
	})
	return out, nil
}

func (r *reservationRepo) CompletedVisits(_ context.Context) ([]domain.Visit, error) {
	r.s.lock()
	defer r.s.unlock()

	var visits []domain.Visit
	for _, id := range sortedIDs(r.s.d.reservations) {
		res := r.s.d.reservations[id]
		if res.Status != domain.ReservationCompleted {
			continue
		}
		spot := r.s.d.spots[res.SpotID]
		lot := r.s.d.lots[spot.LotID]
		visits = append(visits, domain.Visit{
			ReservationID: res.ID,
			UserID:        res.UserID,
			LotID:         lot.ID,
			LocationName:  lot.LocationName,
			Cost:          res.ParkingCost,
			ParkedAt:      res.ParkingTimestamp,
		})
	}
	return visits, nil
}

func (r *reservationRepo) detail(res domain.Reservation) domain.ReservationDetail {
	spot := r.s.d.spots[res.SpotID]
	lot := r.s.d.lots[spot.LotID]
	return domain.ReservationDetail{
		Reservation:  res,
		LotID:        lot.ID,
		LocationName: lot.LocationName,
		Address:      lot.Address,
	}
}
