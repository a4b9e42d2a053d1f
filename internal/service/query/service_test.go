package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository/memory"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/service/lots"
	"github.com/parkgo/parkgo/internal/service/reservation"
)

type mapKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{m: make(map[string]string)}
}

func (kv *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *mapKV) Set(_ context.Context, key, val string, _ time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = val
	return nil
}

func (kv *mapKV) Clear(_ context.Context) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m = make(map[string]string)
	return nil
}

var admin = domain.Actor{UserID: 1, IsAdmin: true}

type fixture struct {
	store *memory.Store
	query *Service
	lots  *lots.Service
	resv  *reservation.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	cache := redisrepo.New(newMapKV())
	return &fixture{
		store: store,
		query: New(store, cache, time.Minute),
		lots:  lots.New(store, cache),
		resv:  reservation.New(store, cache, nil, nil),
	}
}

func TestListLots_InvalidatedByLotCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	if _, err := f.lots.Create(ctx, admin, domain.Lot{LocationName: "Downtown", Price: 10, NumberOfSpots: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.query.ListLots(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(got))
	}

	// A second create invalidates the cached listing after commit.
	if _, err := f.lots.Create(ctx, admin, domain.Lot{LocationName: "Airport", Price: 20, NumberOfSpots: 1}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err = f.query.ListLots(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("stale listing after lot create: %d lots", len(got))
	}
}

func TestLotSpots_ReflectsBookingAfterCommit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lotID, err := f.lots.Create(ctx, admin, domain.Lot{LocationName: "Downtown", Price: 10, NumberOfSpots: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	spots, err := f.query.LotSpots(ctx, lotID)
	if err != nil {
		t.Fatalf("spots: %v", err)
	}
	if len(spots) != 2 || spots[0].Status != domain.SpotAvailable {
		t.Fatalf("unexpected initial spots: %+v", spots)
	}

	if _, err := f.resv.Book(ctx, 1, spots[0].ID, "KA-01-1234"); err != nil {
		t.Fatalf("book: %v", err)
	}

	spots, err = f.query.LotSpots(ctx, lotID)
	if err != nil {
		t.Fatalf("spots after booking: %v", err)
	}
	if spots[0].Status != domain.SpotOccupied {
		t.Errorf("cached spot state survived the booking: %+v", spots[0])
	}
}

func TestLotSpots_UnknownLot(t *testing.T) {
	f := newFixture()

	if _, err := f.query.LotSpots(context.Background(), 42); !errors.Is(err, ErrLotNotFound) {
		t.Errorf("expected ErrLotNotFound, got %v", err)
	}
}

func TestAdminSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lotID, err := f.lots.Create(ctx, admin, domain.Lot{LocationName: "Downtown", Price: 10, NumberOfSpots: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	id, err := f.resv.Book(ctx, 2, 1, "KA-01-1234")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := f.resv.Advance(ctx, id); err != nil {
		t.Fatalf("park in: %v", err)
	}
	if _, err := f.resv.Advance(ctx, id); err != nil {
		t.Fatalf("park out: %v", err)
	}

	sum, err := f.query.AdminSummary(ctx, admin)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(sum) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sum))
	}
	if sum[0].LotID != lotID || sum[0].Revenue != 10 {
		t.Errorf("expected revenue 10 for the completed visit, got %+v", sum[0])
	}
	if sum[0].Occupied != 0 || sum[0].Available != 2 {
		t.Errorf("spot released on completion should show as available: %+v", sum[0])
	}
}

func TestAdminSummary_RequiresAdmin(t *testing.T) {
	f := newFixture()

	if _, err := f.query.AdminSummary(context.Background(), domain.Actor{UserID: 2}); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

func TestUserSummary_InvalidatedByCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	if _, err := f.lots.Create(ctx, admin, domain.Lot{LocationName: "Downtown", Price: 10, NumberOfSpots: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	sum, err := f.query.UserSummary(ctx, 2)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(sum) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}

	id, err := f.resv.Book(ctx, 2, 1, "KA-01-1234")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := f.resv.Advance(ctx, id); err != nil {
		t.Fatalf("park in: %v", err)
	}
	if _, err := f.resv.Advance(ctx, id); err != nil {
		t.Fatalf("park out: %v", err)
	}

	sum, err = f.query.UserSummary(ctx, 2)
	if err != nil {
		t.Fatalf("summary after visit: %v", err)
	}
	if len(sum) != 1 || sum[0].TotalVisits != 1 || sum[0].TotalSpent != 10 {
		t.Errorf("expected one visit worth 10, got %+v", sum)
	}
}
