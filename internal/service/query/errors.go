package query

import "errors"

var (
	ErrNotAdmin    = errors.New("admin privileges required")
	ErrLotNotFound = errors.New("parking lot not found")
)
