package users

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

func newService(t *testing.T) (*memory.Store, *Service, domain.Actor) {
	t.Helper()

	store := memory.NewStore()
	adminID := store.AddUser(domain.User{Email: "admin@parkgo.local", Name: "Admin", IsAdmin: true})
	store.AddUser(domain.User{Email: "user@parkgo.local", Name: "User"})

	return store, New(store, redisrepo.New(nopKV{})), domain.Actor{UserID: adminID, IsAdmin: true}
}

func TestList(t *testing.T) {
	_, svc, admin := newService(t)

	list, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 users, got %d", len(list))
	}
}

func TestList_RequiresAdmin(t *testing.T) {
	_, svc, _ := newService(t)

	if _, err := svc.List(context.Background(), domain.Actor{UserID: 2}); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, svc, admin := newService(t)

	if err := svc.Delete(ctx, admin, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Users().Get(ctx, 2); err == nil {
		t.Errorf("user should be gone")
	}
}

func TestDelete_SelfRejected(t *testing.T) {
	_, svc, admin := newService(t)

	if err := svc.Delete(context.Background(), admin, admin.UserID); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("expected ErrSelfDelete, got %v", err)
	}
}

func TestDelete_ActiveReservationBlocks(t *testing.T) {
	ctx := context.Background()
	store, svc, admin := newService(t)

	lotID, _ := store.Lots().Create(ctx, domain.Lot{LocationName: "Downtown", Price: 10})
	_ = store.Spots().CreateBatch(ctx, lotID, 1)
	if _, err := store.Reservations().Create(ctx, domain.Reservation{
		SpotID: 1, UserID: 2, Status: domain.ReservationActive,
	}); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	if err := svc.Delete(ctx, admin, 2); !errors.Is(err, ErrUserHasOpen) {
		t.Errorf("expected ErrUserHasOpen, got %v", err)
	}
}

func TestDelete_PendingReservationBlocks(t *testing.T) {
	ctx := context.Background()
	store, svc, admin := newService(t)

	lotID, _ := store.Lots().Create(ctx, domain.Lot{LocationName: "Downtown", Price: 10})
	_ = store.Spots().CreateBatch(ctx, lotID, 1)
	if err := store.Spots().Allocate(ctx, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	resID, err := store.Reservations().Create(ctx, domain.Reservation{
		SpotID: 1, UserID: 2, VehicleNumber: "KA-01-1234", Status: domain.ReservationPending,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	// Deleting the user would cascade the reservation away and leave the
	// spot occupied with nothing holding it.
	if err := svc.Delete(ctx, admin, 2); !errors.Is(err, ErrUserHasOpen) {
		t.Fatalf("expected ErrUserHasOpen, got %v", err)
	}

	spot, err := store.Spots().Get(ctx, 1)
	if err != nil {
		t.Fatalf("get spot: %v", err)
	}
	if spot.Status != domain.SpotOccupied {
		t.Errorf("spot status = %q, want occupied", spot.Status)
	}
	if _, err := store.Reservations().Get(ctx, resID); err != nil {
		t.Errorf("reservation should survive the rejected delete: %v", err)
	}
}

func TestDelete_AllowedAfterCompletion(t *testing.T) {
	ctx := context.Background()
	store, svc, admin := newService(t)

	lotID, _ := store.Lots().Create(ctx, domain.Lot{LocationName: "Downtown", Price: 10})
	_ = store.Spots().CreateBatch(ctx, lotID, 1)
	if _, err := store.Reservations().Create(ctx, domain.Reservation{
		SpotID: 1, UserID: 2, Status: domain.ReservationCompleted,
	}); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	if err := svc.Delete(ctx, admin, 2); err != nil {
		t.Fatalf("delete with only completed history: %v", err)
	}
}

func TestDelete_UnknownUser(t *testing.T) {
	_, svc, admin := newService(t)

	if err := svc.Delete(context.Background(), admin, 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
