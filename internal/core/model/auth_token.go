package model

import (
	"github.com/rs/xid"
)

type AuthTokenID string

func NewAuthTokenID() AuthTokenID {
	return AuthTokenID(xid.New().String())
}

// AuthToken is an opaque API token bound to a user.
type AuthToken interface {
	WithID[AuthTokenID]

	Owner() User
	Label() string
	Value() string
}

type BaseAuthToken struct {
	id    AuthTokenID
	owner User
	label string
	value string
}

// ID implements AuthToken.
func (t *BaseAuthToken) ID() AuthTokenID {
	return t.id
}

// Owner implements AuthToken.
func (t *BaseAuthToken) Owner() User {
	return t.owner
}

// Label implements AuthToken.
func (t *BaseAuthToken) Label() string {
	return t.label
}

// Value implements AuthToken.
func (t *BaseAuthToken) Value() string {
	return t.value
}

var _ AuthToken = &BaseAuthToken{}

func NewAuthToken(owner User, label string, value string) *BaseAuthToken {
	return &BaseAuthToken{
		id:    NewAuthTokenID(),
		owner: owner,
		label: label,
		value: value,
	}
}
