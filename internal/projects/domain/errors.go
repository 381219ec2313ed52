package domain

import "errors"

var (
	ErrNotFound           = errors.New("project not found")
	ErrUnauthorized       = errors.New("caller is not authorized")
	ErrAlreadyInitialized = errors.New("super admin already exists")
	ErrAlreadyVoted       = errors.New("caller already voted for this project")
	ErrNotVoted           = errors.New("caller has no vote for this project")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidInput       = errors.New("invalid input")
)
