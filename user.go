package goresto

import (
	"errors"
	"time"

	"github.com/rs/xid"
)

type Repository interface {
	FindByName(username string) (*User, error)
	FindByID(id ID) (*User, error)
	Store(u *User) error
	Update(u *User) error
}

type ID string

type User struct {
	ID          ID
	Username    string
	DisplayName string
	Password    PasswordRecord
	CreatedAt   time.Time
}

var (
	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrExistingUsername   = errors.New("username in use")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NewUser validates the username and returns a user whose display name
// defaults to it. ID, password record and timestamp are assigned by the
// service at registration.
func NewUser(username string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &User{Username: username, DisplayName: username}, nil
}

func nextID() ID {
	return ID(xid.New().String())
}

// IsValidID checks if a given id is valid based on the xid library definition
// of a valid id. This should change if we ever change our id generation library.
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
