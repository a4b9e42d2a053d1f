package domain

import "time"

type SpotStatus string

const (
	SpotAvailable   SpotStatus = "available"
	SpotUnavailable SpotStatus = "unavailable"
	SpotOccupied    SpotStatus = "occupied"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
)

// Open reports whether the reservation still ties up its spot.
func (s ReservationStatus) Open() bool {
	return s == ReservationPending || s == ReservationActive
}

type Lot struct {
	ID            int64
	LocationName  string
	Address       string
	Pincode       string
	Price         float64
	NumberOfSpots int
}

type Spot struct {
	ID     int64
	LotID  int64
	Status SpotStatus
}

type Reservation struct {
	ID            int64
	SpotID        int64
	UserID        int64
	VehicleNumber string
	// ParkingCost is snapshotted from the lot's price at booking time and
	// never recomputed, even if the lot's price changes later.
	ParkingCost      float64
	ParkingTimestamp time.Time
	LeavingTimestamp *time.Time
	Status           ReservationStatus
}

// Actor is the caller identity handed down by the auth/session layer. The
// core trusts it completely and performs no authentication itself.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

type User struct {
	ID      int64
	Email   string
	Name    string
	Address string
	Pincode string
	IsAdmin bool
}

// ReservationDetail is a reservation joined with its lot for listings.
type ReservationDetail struct {
	Reservation
	LotID        int64
	LocationName string
	Address      string
}

// Visit is one completed reservation joined with its lot. It is the input
// row of the aggregation helpers in internal/report.
type Visit struct {
	ReservationID int64
	UserID        int64
	LotID         int64
	LocationName  string
	Cost          float64
	ParkedAt      time.Time
}

type LotSummary struct {
	LotID       int64   `json:"lot_id"`
	Name        string  `json:"name"`
	Revenue     float64 `json:"revenue"`
	Occupied    int     `json:"occupied"`
	Unavailable int     `json:"unavailable"`
	Available   int     `json:"available"`
}

type UserLotSummary struct {
	Location    string  `json:"location"`
	TotalVisits int     `json:"total_visits"`
	TotalSpent  float64 `json:"total_spent"`
}

type MonthlyReport struct {
	UserID        int64
	Month         time.Month
	Year          int
	BookingsCount int
	TotalSpent    float64
	MostUsedLot   string
}
