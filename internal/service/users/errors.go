package users

import "errors"

var (
	ErrNotAdmin     = errors.New("admin privileges required")
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDelete   = errors.New("cannot delete own account")
	ErrUserHasOpen  = errors.New("user has an open reservation")
)
