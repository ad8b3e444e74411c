package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("login required")
	ErrRateLimited     = errors.New("too many messages")
	ErrLockNotAcquired = errors.New("lock not acquired")
)
