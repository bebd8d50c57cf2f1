package domain

import "errors"

var (
	ErrMissingContainer  = errors.New("missing_container")
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrMissingIdentifier = errors.New("missing_identifier")
	ErrNilDispatcher     = errors.New("nil_dispatcher")
)
