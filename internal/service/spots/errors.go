package spots

import "errors"

var (
	ErrNotAdmin     = errors.New("only admins can manage parking spots")
	ErrSpotNotFound = errors.New("parking spot not found")
	// ErrSpotOccupied rejects disabling or deleting a spot that currently
	// has a parked vehicle.
	ErrSpotOccupied = errors.New("spot is occupied")
)
