package reservation

import "errors"

var (
	ErrSpotNotFound = errors.New("parking spot not found")
	// ErrSpotUnavailable covers both a spot that is not currently available
	// and a spot whose lot can no longer be resolved.
	ErrSpotUnavailable = errors.New("spot is not available")
	// ErrDuplicateVehicle rejects a second open reservation for the same
	// vehicle by the same user.
	ErrDuplicateVehicle    = errors.New("cannot book another spot with the same vehicle")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyCompleted    = errors.New("reservation already completed")
	ErrRateLimited         = errors.New("rate limited")
	ErrNoActiveReservation = errors.New("no open reservation for this spot")
)
