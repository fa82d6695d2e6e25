package dataview

import "errors"

var (
	ErrInvalidRow   = errors.New("invalid row selection")
	ErrInvalidQuery = errors.New("invalid filter query")
	ErrInvalidSort  = errors.New("invalid sort")
	ErrInvalidPage  = errors.New("invalid page")
)
