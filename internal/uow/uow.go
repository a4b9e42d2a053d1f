package uow

import (
	"context"

	"github.com/parkgo/parkgo/internal/repository"
)

// AfterCommit is a function that runs after a successful transaction commit.
// Cache invalidation and task enqueueing go through these hooks so a racing
// reader can never repopulate the cache from pre-commit state.
type AfterCommit func(ctx context.Context)

// UoW represents a unit of work over a repository.Store.
type UoW struct {
	store repository.Store
}

func New(store repository.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn inside one transaction. After a successful commit, it executes
// all registered after-commit hooks in order.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Store, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	err := u.store.RunTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return fn(ctx, tx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
