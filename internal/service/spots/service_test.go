package spots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository/memory"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
)

type nopKV struct{}

func (nopKV) Get(context.Context, string) (string, bool, error)        { return "", false, nil }
func (nopKV) Set(context.Context, string, string, time.Duration) error { return nil }
func (nopKV) Clear(context.Context) error                              { return nil }

var admin = domain.Actor{UserID: 1, IsAdmin: true}

func newService(t *testing.T) (*memory.Store, *Service, int64) {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()

	lotID, err := store.Lots().Create(ctx, domain.Lot{LocationName: "Downtown", Price: 10, NumberOfSpots: 2})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}
	if err := store.Spots().CreateBatch(ctx, lotID, 2); err != nil {
		t.Fatalf("create spots: %v", err)
	}

	return store, New(store, redisrepo.New(nopKV{})), lotID
}

func TestToggle_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newService(t)

	status, err := svc.Toggle(ctx, admin, 1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if status != domain.SpotUnavailable {
		t.Errorf("expected unavailable, got %s", status)
	}

	status, err = svc.Toggle(ctx, admin, 1)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if status != domain.SpotAvailable {
		t.Errorf("expected available, got %s", status)
	}
}

func TestToggle_OccupiedRejected(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newService(t)

	if err := store.Spots().Allocate(ctx, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if _, err := svc.Toggle(ctx, admin, 1); !errors.Is(err, ErrSpotOccupied) {
		t.Errorf("expected ErrSpotOccupied, got %v", err)
	}
}

func TestToggle_RequiresAdmin(t *testing.T) {
	_, svc, _ := newService(t)

	if _, err := svc.Toggle(context.Background(), domain.Actor{UserID: 5}, 1); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

func TestToggle_UnknownSpot(t *testing.T) {
	_, svc, _ := newService(t)

	if _, err := svc.Toggle(context.Background(), admin, 99); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("expected ErrSpotNotFound, got %v", err)
	}
}

func TestRemove_DecrementsLotCount(t *testing.T) {
	ctx := context.Background()
	store, svc, lotID := newService(t)

	if err := svc.Remove(ctx, admin, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}

	spots, _ := store.Spots().ListByLot(ctx, lotID)
	if len(spots) != 1 {
		t.Errorf("expected 1 spot left, got %d", len(spots))
	}
	lot, _ := store.Lots().Get(ctx, lotID)
	if lot.NumberOfSpots != 1 {
		t.Errorf("declared count should track removal, got %d", lot.NumberOfSpots)
	}
}

func TestRemove_OccupiedRejected(t *testing.T) {
	ctx := context.Background()
	store, svc, lotID := newService(t)

	if err := store.Spots().Allocate(ctx, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if err := svc.Remove(ctx, admin, 1); !errors.Is(err, ErrSpotOccupied) {
		t.Fatalf("expected ErrSpotOccupied, got %v", err)
	}

	// Nothing committed.
	lot, _ := store.Lots().Get(ctx, lotID)
	if lot.NumberOfSpots != 2 {
		t.Errorf("failed remove must not change the declared count, got %d", lot.NumberOfSpots)
	}
}
