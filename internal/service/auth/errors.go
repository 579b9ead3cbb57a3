package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates the email/password pair does not match a
	// user. Login deliberately does not reveal which half was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooShort indicates the supplied password is below the minimum length
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong indicates the supplied password exceeds the bcrypt input limit
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)
