package postgres

import (
	"context"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type LotRepo struct {
	db DB
}

func (r *LotRepo) Create(ctx context.Context, lot domain.Lot) (int64, error) {
	const op = "postgres.LotRepo.Create"

	var id int64
	if err := r.db.QueryRow(ctx,
		`INSERT INTO parking_lots(prime_location_name, address, pincode, price, number_of_spots)
       	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		lot.LocationName, lot.Address, lot.Pincode, lot.Price, lot.NumberOfSpots,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *LotRepo) Get(ctx context.Context, id int64) (*domain.Lot, error) {
	const op = "postgres.LotRepo.Get"
	return r.get(ctx, op, id, false)
}

// GetForUpdate locks the lot row so concurrent resizes on the same lot
// serialize at the store.
func (r *LotRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error) {
	const op = "postgres.LotRepo.GetForUpdate"
	return r.get(ctx, op, id, true)
}

func (r *LotRepo) get(ctx context.Context, op string, id int64, lock bool) (*domain.Lot, error) {
	q := `SELECT id, prime_location_name, address, pincode, price, number_of_spots
       	  FROM parking_lots WHERE id = $1`
	if lock {
		q += ` FOR UPDATE`
	}

	var l domain.Lot
	err := r.db.QueryRow(ctx, q, id).
		Scan(&l.ID, &l.LocationName, &l.Address, &l.Pincode, &l.Price, &l.NumberOfSpots)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &l, nil
}

func (r *LotRepo) List(ctx context.Context) ([]domain.Lot, error) {
	const op = "postgres.LotRepo.List"

	rows, err := r.db.Query(ctx,
		`SELECT id, prime_location_name, address, pincode, price, number_of_spots
       	 FROM parking_lots
      	 ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	return scanLots(op, rows)
}

// Search matches lots by location-name substring or pincode prefix. Empty
// filters match everything.
func (r *LotRepo) Search(ctx context.Context, location, pincode string) ([]domain.Lot, error) {
	const op = "postgres.LotRepo.Search"

	rows, err := r.db.Query(ctx,
		`SELECT id, prime_location_name, address, pincode, price, number_of_spots
       	 FROM parking_lots
      	 WHERE ($1 = '' OR prime_location_name ILIKE '%' || $1 || '%')
        	AND ($2 = '' OR pincode LIKE $2 || '%')
      	 ORDER BY id`,
		location, pincode,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	return scanLots(op, rows)
}

func (r *LotRepo) Update(ctx context.Context, lot domain.Lot) error {
	const op = "postgres.LotRepo.Update"

	tag, err := r.db.Exec(ctx,
		`UPDATE parking_lots
        	SET prime_location_name = $2, address = $3, pincode = $4, price = $5, number_of_spots = $6
      	 WHERE id = $1`,
		lot.ID, lot.LocationName, lot.Address, lot.Pincode, lot.Price, lot.NumberOfSpots,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes the lot; spots and their completed reservations go with it
// through the FK cascade.
func (r *LotRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.LotRepo.Delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM parking_lots WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

type lotRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLots(op string, rows lotRows) ([]domain.Lot, error) {
	var lots []domain.Lot
	for rows.Next() {
		var l domain.Lot
		if err := rows.Scan(&l.ID, &l.LocationName, &l.Address, &l.Pincode, &l.Price, &l.NumberOfSpots); err != nil {
			return nil, wrapDBErr(op, err)
		}
		lots = append(lots, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return lots, nil
}
