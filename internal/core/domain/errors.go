package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserNotCreatedError is returned when a registration payload fails field
// validation. Message holds the concatenated "<field> - <message>;" text in
// the order the validator reported the errors.
type UserNotCreatedError struct {
	Message string
}

func (e *UserNotCreatedError) Error() string {
	return e.Message
}
