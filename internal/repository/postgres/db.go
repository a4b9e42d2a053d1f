package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkgo/parkgo/internal/repository"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store implements repository.Store over a pgx pool. A Store returned by
// RunTx carries the open transaction in db, so every repo it hands out
// reads and writes through that transaction.
type Store struct {
	pool *pgxpool.Pool
	db   DB
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) handle() DB {
	if s.db != nil {
		return s.db
	}
	return s.pool
}

func (s *Store) RunTx(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Store) error,
) error {
	// Nested RunTx joins the surrounding transaction.
	if s.db != nil {
		return fn(ctx, s)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, &Store{pool: s.pool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) Lots() repository.LotRepo                 { return &LotRepo{db: s.handle()} }
func (s *Store) Spots() repository.SpotRepo               { return &SpotRepo{db: s.handle()} }
func (s *Store) Reservations() repository.ReservationRepo { return &ReservationRepo{db: s.handle()} }
func (s *Store) Users() repository.UserRepo               { return &UserRepo{db: s.handle()} }
