package services

import "errors"

// Client-caused failures surfaced to controllers, which translate them into
// 4xx responses. Infrastructure failures are returned as-is and become 500s.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrUnknownAttribute = errors.New("referenced tag or ingredient does not exist for this user")
	ErrUserExists       = errors.New("user_already_exists")
	ErrInvalidEmail     = errors.New("email must not be empty")
)
