package service

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP
// status codes; services never retry state-mutating operations on their
// own to avoid duplicate side effects.
var (
	ErrInvalidTransition  = errors.New("requested pipeline action is not valid from the candidate's current status")
	ErrMissingReason      = errors.New("a reason is required for this action")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("caller is not permitted to perform this operation")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
