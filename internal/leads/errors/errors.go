package errors

import "errors"

var (
	ErrUnknownField = errors.New("unknown form field")

	ErrPhoneManaged = errors.New("phone is set through the phone input")

	ErrAlreadySubmitted = errors.New("form already submitted")
)
