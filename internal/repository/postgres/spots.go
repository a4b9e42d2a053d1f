package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type SpotRepo struct {
	db DB
}

func (r *SpotRepo) CreateBatch(ctx context.Context, lotID int64, count int) error {
	const op = "postgres.SpotRepo.CreateBatch"

	batch := &pgx.Batch{}
	for i := 0; i < count; i++ {
		batch.Queue(
			`INSERT INTO parking_spots(lot_id, status) VALUES ($1, 'available')`,
			lotID,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *SpotRepo) Get(ctx context.Context, id int64) (*domain.Spot, error) {
	const op = "postgres.SpotRepo.Get"

	var s domain.Spot
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, status FROM parking_spots WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.LotID, &s.Status)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &s, nil
}

func (r *SpotRepo) ListByLot(ctx context.Context, lotID int64) ([]domain.Spot, error) {
	const op = "postgres.SpotRepo.ListByLot"

	rows, err := r.db.Query(ctx,
		`SELECT id, lot_id, status
       	 FROM parking_spots
      	 WHERE lot_id = $1
      	 ORDER BY id`,
		lotID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var spots []domain.Spot
	for rows.Next() {
		var s domain.Spot
		if err := rows.Scan(&s.ID, &s.LotID, &s.Status); err != nil {
			return nil, wrapDBErr(op, err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return spots, nil
}

func (r *SpotRepo) FirstAvailable(ctx context.Context, lotID int64) (int64, error) {
	const op = "postgres.SpotRepo.FirstAvailable"

	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM parking_spots
      	 WHERE lot_id = $1 AND status = 'available'
      	 ORDER BY id
      	 LIMIT 1`,
		lotID,
	).Scan(&id)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *SpotRepo) CountByStatus(ctx context.Context, lotID int64, status domain.SpotStatus) (int, error) {
	const op = "postgres.SpotRepo.CountByStatus"

	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM parking_spots WHERE lot_id = $1 AND status = $2`,
		lotID, status,
	).Scan(&n)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

// Allocate is the booking-side status flip. The availability check and the
// transition are one conditional UPDATE, so two concurrent bookings of the
// same spot cannot both pass a stale read.
func (r *SpotRepo) Allocate(ctx context.Context, id int64) error {
	const op = "postgres.SpotRepo.Allocate"
	return r.transition(ctx, op, id, domain.SpotAvailable, domain.SpotOccupied)
}

func (r *SpotRepo) Release(ctx context.Context, id int64) error {
	const op = "postgres.SpotRepo.Release"
	return r.transition(ctx, op, id, domain.SpotOccupied, domain.SpotAvailable)
}

func (r *SpotRepo) SetStatus(ctx context.Context, id int64, from, to domain.SpotStatus) error {
	const op = "postgres.SpotRepo.SetStatus"
	return r.transition(ctx, op, id, from, to)
}

func (r *SpotRepo) transition(
	ctx context.Context,
	op string,
	id int64,
	from, to domain.SpotStatus,
) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE parking_spots SET status = $3 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a missing spot from one in the wrong state.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM parking_spots WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return wrapDBErr(op, err)
		}
		if !exists {
			return wrapDBErr(op, repository.ErrNotFound)
		}
		return wrapDBErr(op, repository.ErrConflict)
	}

	return nil
}

// RemoveNewest deletes up to count non-occupied spots of the lot, newest
// first, and reports how many were deleted. The caller decides whether a
// partial result invalidates the whole operation.
func (r *SpotRepo) RemoveNewest(ctx context.Context, lotID int64, count int) (int, error) {
	const op = "postgres.SpotRepo.RemoveNewest"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM parking_spots
      	 WHERE id IN (
        	SELECT id FROM parking_spots
         	WHERE lot_id = $1 AND status <> 'occupied'
         	ORDER BY id DESC
         	LIMIT $2
      	 )`,
		lotID, count,
	)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *SpotRepo) Remove(ctx context.Context, id int64) error {
	const op = "postgres.SpotRepo.Remove"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM parking_spots WHERE id = $1 AND status <> 'occupied'`,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM parking_spots WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return wrapDBErr(op, err)
		}
		if !exists {
			return wrapDBErr(op, repository.ErrNotFound)
		}
		return wrapDBErr(op, repository.ErrConflict)
	}

	return nil
}
