package lots

import "errors"

var (
	ErrNotAdmin    = errors.New("only admins can manage parking lots")
	ErrLotNotFound = errors.New("parking lot not found")
	// ErrCapacityFloor rejects a shrink or delete that would have to remove
	// occupied spots.
	ErrCapacityFloor   = errors.New("cannot shrink below occupied-spot floor")
	ErrLotOccupied     = errors.New("cannot delete lot while spots are occupied")
	ErrInvalidCapacity = errors.New("spot count must not be negative")
	ErrNoSpotAvailable = errors.New("no available parking spot")
)
