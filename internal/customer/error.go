package customer

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAccountExists      = errors.New("an user exist with the provided email or phone number")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrAlreadyVerified    = errors.New("customer already verified")
)
