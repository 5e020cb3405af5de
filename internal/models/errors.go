package models

import "errors"

// Application-wide standard errors
var (
	// User & directory errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this username already exists")
	ErrInvalidUsername   = errors.New("username is invalid")
	ErrForbidden         = errors.New("forbidden")

	// Follow graph errors
	ErrSelfFollow          = errors.New("users cannot follow themselves")
	ErrFollowNotFound      = errors.New("follow does not exist")
	ErrFollowAlreadyExists = errors.New("follow already exists")

	// Cache errors
	ErrCacheMiss = errors.New("cache entry not found")
)
