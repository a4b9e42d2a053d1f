package postgres

import (
	"context"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type UserRepo struct {
	db DB
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, address, pincode, is_admin
       	 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Address, &u.Pincode, &u.IsAdmin)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const op = "postgres.UserRepo.List"
	return r.list(ctx, op, false)
}

func (r *UserRepo) ListNonAdmins(ctx context.Context) ([]domain.User, error) {
	const op = "postgres.UserRepo.ListNonAdmins"
	return r.list(ctx, op, true)
}

func (r *UserRepo) list(ctx context.Context, op string, nonAdminsOnly bool) ([]domain.User, error) {
	q := `SELECT id, email, name, address, pincode, is_admin FROM users`
	if nonAdminsOnly {
		q += ` WHERE NOT is_admin`
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Address, &u.Pincode, &u.IsAdmin); err != nil {
			return nil, wrapDBErr(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return users, nil
}

// Delete removes the user; their reservations go with them through the FK
// cascade. The active-reservation guard lives in the users service.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.UserRepo.Delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}
