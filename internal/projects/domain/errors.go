package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("insufficient permissions for this project")
	ErrUnknownMember   = errors.New("member id does not reference an existing user")
)
