package memory

import (
	"context"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Get(_ context.Context, id int64) (*domain.User, error) {
	r.s.lock()
	defer r.s.unlock()

	u, ok := r.s.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) List(_ context.Context) ([]domain.User, error) {
	return r.list(false)
}

func (r *userRepo) ListNonAdmins(_ context.Context) ([]domain.User, error) {
	return r.list(true)
}

func (r *userRepo) list(nonAdminsOnly bool) ([]domain.User, error) {
	r.s.lock()
	defer r.s.unlock()

	var users []domain.User
	for _, id := range sortedIDs(r.s.d.users) {
		u := r.s.d.users[id]
		if nonAdminsOnly && u.IsAdmin {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.d.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.d.users, id)

	// FK cascade: the user's reservations. Callers must refuse the delete
	// while the user holds an open reservation, so only history remains
	// here.
	for resID, res := range r.s.d.reservations {
		if res.UserID == id {
			delete(r.s.d.reservations, resID)
		}
	}
	return nil
}
