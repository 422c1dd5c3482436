package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")

	// Raised by stores when the one-active-rental guard rejects a write.
	ErrBookOnLoan    = errors.New("book already has an active rental")
	ErrMemberHasLoan = errors.New("member already has an active rental")
)
