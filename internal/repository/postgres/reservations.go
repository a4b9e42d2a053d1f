package postgres

import (
	"context"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type ReservationRepo struct {
	db DB
}

func (r *ReservationRepo) Create(ctx context.Context, res domain.Reservation) (int64, error) {
	const op = "postgres.ReservationRepo.Create"

	var id int64
	if err := r.db.QueryRow(ctx,
		`INSERT INTO reservations(spot_id, user_id, vehicle_number, parking_cost, parking_timestamp, status)
       	 VALUES ($1, $2, $3, $4, $5, $6)
     	 RETURNING id`,
		res.SpotID, res.UserID, res.VehicleNumber, res.ParkingCost, res.ParkingTimestamp, res.Status,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *ReservationRepo) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.Get"
	return r.get(ctx, op, id, false)
}

func (r *ReservationRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.GetForUpdate"
	return r.get(ctx, op, id, true)
}

func (r *ReservationRepo) get(ctx context.Context, op string, id int64, lock bool) (*domain.Reservation, error) {
	q := `SELECT id, spot_id, user_id, vehicle_number, parking_cost, parking_timestamp, leaving_timestamp, status
       	  FROM reservations WHERE id = $1`
	if lock {
		q += ` FOR UPDATE`
	}

	var res domain.Reservation
	err := r.db.QueryRow(ctx, q, id).Scan(
		&res.ID, &res.SpotID, &res.UserID, &res.VehicleNumber,
		&res.ParkingCost, &res.ParkingTimestamp, &res.LeavingTimestamp, &res.Status,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &res, nil
}

func (r *ReservationRepo) Update(ctx context.Context, res domain.Reservation) error {
	const op = "postgres.ReservationRepo.Update"

	tag, err := r.db.Exec(ctx,
		`UPDATE reservations
        	SET status = $2, leaving_timestamp = $3
      	 WHERE id = $1`,
		res.ID, res.Status, res.LeavingTimestamp,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepo) HasOpenForVehicle(ctx context.Context, userID int64, vehicleNumber string) (bool, error) {
	const op = "postgres.ReservationRepo.HasOpenForVehicle"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
        	SELECT 1 FROM reservations
         	WHERE user_id = $1 AND vehicle_number = $2 AND status <> 'completed'
      	 )`,
		userID, vehicleNumber,
	).Scan(&exists)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return exists, nil
}

func (r *ReservationRepo) HasOpenByUser(ctx context.Context, userID int64) (bool, error) {
	const op = "postgres.ReservationRepo.HasOpenByUser"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
        	SELECT 1 FROM reservations WHERE user_id = $1 AND status <> 'completed'
      	 )`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return exists, nil
}

func (r *ReservationRepo) OpenBySpot(ctx context.Context, spotID int64) (*domain.ReservationDetail, error) {
	const op = "postgres.ReservationRepo.OpenBySpot"

	var d domain.ReservationDetail
	err := r.db.QueryRow(ctx,
		`SELECT r.id, r.spot_id, r.user_id, r.vehicle_number, r.parking_cost,
            	r.parking_timestamp, r.leaving_timestamp, r.status,
            	l.id, l.prime_location_name, l.address
       	 FROM reservations r
       	 JOIN parking_spots s ON s.id = r.spot_id
       	 JOIN parking_lots l ON l.id = s.lot_id
      	 WHERE r.spot_id = $1 AND r.status <> 'completed'
      	 LIMIT 1`,
		spotID,
	).Scan(
		&d.ID, &d.SpotID, &d.UserID, &d.VehicleNumber, &d.ParkingCost,
		&d.ParkingTimestamp, &d.LeavingTimestamp, &d.Status,
		&d.LotID, &d.LocationName, &d.Address,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &d, nil
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error) {
	const op = "postgres.ReservationRepo.ListByUser"

	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.spot_id, r.user_id, r.vehicle_number, r.parking_cost,
            	r.parking_timestamp, r.leaving_timestamp, r.status,
            	l.id, l.prime_location_name, l.address
       	 FROM reservations r
       	 JOIN parking_spots s ON s.id = r.spot_id
       	 JOIN parking_lots l ON l.id = s.lot_id
      	 WHERE r.user_id = $1
      	 ORDER BY r.parking_timestamp DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.ReservationDetail
	for rows.Next() {
		var d domain.ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.SpotID, &d.UserID, &d.VehicleNumber, &d.ParkingCost,
			&d.ParkingTimestamp, &d.LeavingTimestamp, &d.Status,
			&d.LotID, &d.LocationName, &d.Address,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *ReservationRepo) CompletedVisits(ctx context.Context) ([]domain.Visit, error) {
	const op = "postgres.ReservationRepo.CompletedVisits"

	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.user_id, l.id, l.prime_location_name, r.parking_cost, r.parking_timestamp
       	 FROM reservations r
       	 JOIN parking_spots s ON s.id = r.spot_id
       	 JOIN parking_lots l ON l.id = s.lot_id
      	 WHERE r.status = 'completed'
      	 ORDER BY r.id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(&v.ReservationID, &v.UserID, &v.LotID, &v.LocationName, &v.Cost, &v.ParkedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return visits, nil
}
