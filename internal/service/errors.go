package service

import "errors"

// Sentinel errors returned by the service layer. The API layer maps these to
// HTTP status codes; anything else is treated as an internal error.
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrProductionNotFound = errors.New("production not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEntryNotFound      = errors.New("timesheet entry not found")
	ErrNoRateCard         = errors.New("no rate card configured for this crew member")

	ErrReadAccessDenied  = errors.New("you don't have access to this production")
	ErrWriteAccessDenied = errors.New("you don't have write permission for this production")
	ErrNotCreator        = errors.New("only the production creator can delete it")

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)
