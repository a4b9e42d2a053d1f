package httpgin

import (
	"time"

	"github.com/parkgo/parkgo/internal/domain"
)

// NumberOfSpots is a pointer so an explicit 0 still satisfies required;
// omitting the field must not be read as a resize to zero.
type CreateLotRequest struct {
	LocationName  string  `json:"prime_location_name" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Pincode       string  `json:"pincode" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	NumberOfSpots *int    `json:"number_of_spots" binding:"required,gte=0"`
}

type UpdateLotRequest struct {
	LocationName  string  `json:"prime_location_name" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Pincode       string  `json:"pincode" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	NumberOfSpots *int    `json:"number_of_spots" binding:"required,gte=0"`
}

// BookReservationRequest books either an explicit spot or, when spot_id is
// omitted, the first available spot of the given lot.
type BookReservationRequest struct {
	LotID         int64  `json:"lot_id"`
	SpotID        int64  `json:"spot_id"`
	VehicleNumber string `json:"vehicle_number" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LotResponse struct {
	ID            int64   `json:"id"`
	LocationName  string  `json:"prime_location_name"`
	Address       string  `json:"address"`
	Pincode       string  `json:"pincode"`
	Price         float64 `json:"price"`
	NumberOfSpots int     `json:"number_of_spots"`
}

type SpotResponse struct {
	ID     int64  `json:"id"`
	LotID  int64  `json:"lot_id"`
	Status string `json:"status"`
}

type ReservationResponse struct {
	ID               int64      `json:"id"`
	SpotID           int64      `json:"spot_id"`
	UserID           int64      `json:"user_id"`
	VehicleNumber    string     `json:"vehicle_number"`
	ParkingCost      float64    `json:"parking_cost"`
	ParkingTimestamp time.Time  `json:"parking_timestamp"`
	LeavingTimestamp *time.Time `json:"leaving_timestamp,omitempty"`
	Status           string     `json:"status"`
}

type ReservationDetailResponse struct {
	ReservationResponse
	LotID        int64  `json:"lot_id"`
	LocationName string `json:"prime_location_name"`
	Address      string `json:"address"`
}

type UserResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	IsAdmin bool   `json:"is_admin"`
}

func toLotResponse(l domain.Lot) LotResponse {
	return LotResponse{
		ID:            l.ID,
		LocationName:  l.LocationName,
		Address:       l.Address,
		Pincode:       l.Pincode,
		Price:         l.Price,
		NumberOfSpots: l.NumberOfSpots,
	}
}

func toLotResponses(lots []domain.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, toLotResponse(l))
	}
	return out
}

func toSpotResponses(spots []domain.Spot) []SpotResponse {
	out := make([]SpotResponse, 0, len(spots))
	for _, s := range spots {
		out = append(out, SpotResponse{ID: s.ID, LotID: s.LotID, Status: string(s.Status)})
	}
	return out
}

func toReservationResponse(r domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		SpotID:           r.SpotID,
		UserID:           r.UserID,
		VehicleNumber:    r.VehicleNumber,
		ParkingCost:      r.ParkingCost,
		ParkingTimestamp: r.ParkingTimestamp,
		LeavingTimestamp: r.LeavingTimestamp,
		Status:           string(r.Status),
	}
}

func toReservationDetailResponses(list []domain.ReservationDetail) []ReservationDetailResponse {
	out := make([]ReservationDetailResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ReservationDetailResponse{
			ReservationResponse: toReservationResponse(d.Reservation),
			LotID:               d.LotID,
			LocationName:        d.LocationName,
			Address:             d.Address,
		})
	}
	return out
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:      u.ID,
			Email:   u.Email,
			Name:    u.Name,
			Address: u.Address,
			Pincode: u.Pincode,
			IsAdmin: u.IsAdmin,
		})
	}
	return out
}
