package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/repository/memory"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/service"
)

const testSecret = "test-secret"

func intptr(n int) *int { return &n }

type nopKV struct{}

func (nopKV) Get(context.Context, string) (string, bool, error)        { return "", false, nil }
func (nopKV) Set(context.Context, string, string, time.Duration) error { return nil }
func (nopKV) Clear(context.Context) error                              { return nil }

type nopQueue struct{}

func (nopQueue) Enqueue(context.Context, string, any) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddUser(domain.User{Email: "admin@parkgo.local", Name: "Admin", IsAdmin: true})
	store.AddUser(domain.User{Email: "user@parkgo.local", Name: "Pat"})

	svcs := service.NewServices(store, redisrepo.New(nopKV{}), nopQueue{}, nil, service.Config{
		CacheTTL: time.Minute,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(svcs, nopQueue{}, logger, Config{JWTSecret: testSecret, ExportsDir: t.TempDir()}), store
}

func token(t *testing.T, userID int64, isAdmin bool) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/lots", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_BadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/lots", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminEndpoints_ForbiddenForRegularUser(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/lots", token(t, 2, false), CreateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 10, NumberOfSpots: intptr(2),
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d: %s", w.Code, w.Body)
	}
}

func TestLotLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	adminTok := token(t, 1, true)

	w := doJSON(t, r, http.MethodPost, "/api/admin/lots", adminTok, CreateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 10, NumberOfSpots: intptr(2),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body)
	}

	var created map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	lotID := created["lot_id"]

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/lots/%d", lotID), token(t, 2, false), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var lot LotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &lot); err != nil {
		t.Fatalf("decode lot: %v", err)
	}
	if lot.LocationName != "Downtown" || lot.NumberOfSpots != 2 {
		t.Errorf("wrong lot payload: %+v", lot)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/lots/%d", lotID), adminTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d: %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/lots/%d", lotID), adminTok, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestUpdateLot_MissingSpotCountRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	adminTok := token(t, 1, true)

	w := doJSON(t, r, http.MethodPost, "/api/admin/lots", adminTok, CreateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 10, NumberOfSpots: intptr(2),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d: %s", w.Code, w.Body)
	}

	// An omitted number_of_spots must not be read as a resize to zero.
	w = doJSON(t, r, http.MethodPut, "/api/admin/lots/1", adminTok, map[string]any{
		"prime_location_name": "Downtown",
		"address":             "1 Main St",
		"pincode":             "110001",
		"price":               12,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodGet, "/api/lots/1", adminTok, nil)
	var lot LotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &lot); err != nil {
		t.Fatalf("decode lot: %v", err)
	}
	if lot.NumberOfSpots != 2 {
		t.Errorf("spot count = %d, want 2 (rejected update must not resize)", lot.NumberOfSpots)
	}

	// An explicit zero is still a valid resize.
	w = doJSON(t, r, http.MethodPut, "/api/admin/lots/1", adminTok, UpdateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 12, NumberOfSpots: intptr(0),
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("resize to 0: expected 204, got %d: %s", w.Code, w.Body)
	}
}

func TestBookAndAdvanceOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	adminTok := token(t, 1, true)
	userTok := token(t, 2, false)

	w := doJSON(t, r, http.MethodPost, "/api/admin/lots", adminTok, CreateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 10, NumberOfSpots: intptr(1),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lot: %d: %s", w.Code, w.Body)
	}

	// Book by lot; the first available spot gets assigned.
	w = doJSON(t, r, http.MethodPost, "/api/reservations", userTok, BookReservationRequest{
		LotID: 1, VehicleNumber: "KA-01-1234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: expected 201, got %d: %s", w.Code, w.Body)
	}
	var booked map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &booked); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resID := booked["reservation_id"]

	// The lot is now full.
	w = doJSON(t, r, http.MethodPost, "/api/reservations", userTok, BookReservationRequest{
		LotID: 1, VehicleNumber: "KA-01-5678",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("full lot: expected 409, got %d: %s", w.Code, w.Body)
	}

	// Park in, park out.
	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/reservations/%d/advance", resID), userTok, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("advance %d: expected 200, got %d: %s", i, w.Code, w.Body)
		}
	}

	// A third advance conflicts.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/reservations/%d/advance", resID), userTok, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on completed reservation, got %d", w.Code)
	}

	// History shows up in the user's listing.
	w = doJSON(t, r, http.MethodGet, "/api/reservations", userTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var list []ReservationDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Status != "completed" {
		t.Errorf("expected one completed reservation, got %+v", list)
	}
}

func TestDuplicateVehicleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	adminTok := token(t, 1, true)
	userTok := token(t, 2, false)

	w := doJSON(t, r, http.MethodPost, "/api/admin/lots", adminTok, CreateLotRequest{
		LocationName: "Downtown", Address: "1 Main St", Pincode: "110001",
		Price: 10, NumberOfSpots: intptr(2),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lot: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reservations", userTok, BookReservationRequest{
		LotID: 1, VehicleNumber: "KA-01-1234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("first book: %d: %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reservations", userTok, BookReservationRequest{
		LotID: 1, VehicleNumber: "KA-01-1234",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate vehicle: expected 409, got %d: %s", w.Code, w.Body)
	}
}

func TestETagOnLotListing(t *testing.T) {
	r, _ := newTestRouter(t)
	userTok := token(t, 2, false)

	w := doJSON(t, r, http.MethodGet, "/api/lots", userTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotModified {
		t.Errorf("expected 304 on matching ETag, got %d", w2.Code)
	}
}

func TestDownloadExport_RejectsForeignFilenames(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/exports/download/passwd", token(t, 2, false), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-export filename, got %d", w.Code)
	}
}
