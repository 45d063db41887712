package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound   = errors.New("player not found")
	ErrBadCSVRow  = errors.New("malformed csv row")
	ErrStoreClose = errors.New("store close failed")
)
