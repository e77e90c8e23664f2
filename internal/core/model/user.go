package model

import (
	"fmt"

	"github.com/rs/xid"
)

type UserID string

func NewUserID() UserID {
	return UserID(xid.New().String())
}

// User is the principal on whose behalf an operation is executed.
type User interface {
	WithID[UserID]

	Email() string
	DisplayName() string
	IsSuperuser() bool
	Active() bool
}

type BaseUser struct {
	id          UserID
	email       string
	displayName string
	superuser   bool
	active      bool
}

// ID implements User.
func (u *BaseUser) ID() UserID {
	return u.id
}

// Email implements User.
func (u *BaseUser) Email() string {
	return u.email
}

// DisplayName implements User.
func (u *BaseUser) DisplayName() string {
	return u.displayName
}

// IsSuperuser implements User.
func (u *BaseUser) IsSuperuser() bool {
	return u.superuser
}

// Active implements User.
func (u *BaseUser) Active() bool {
	return u.active
}

func (u *BaseUser) SetActive(active bool) {
	u.active = active
}

func (u *BaseUser) SetSuperuser(superuser bool) {
	u.superuser = superuser
}

var _ User = &BaseUser{}

func NewUser(email string, displayName string, superuser bool) *BaseUser {
	return &BaseUser{
		id:          NewUserID(),
		email:       email,
		displayName: displayName,
		superuser:   superuser,
		active:      true,
	}
}

// CopyUser returns a mutable copy of the given user.
func CopyUser(u User) *BaseUser {
	return &BaseUser{
		id:          u.ID(),
		email:       u.Email(),
		displayName: u.DisplayName(),
		superuser:   u.IsSuperuser(),
		active:      u.Active(),
	}
}

func UserString(u User) string {
	if u == nil {
		return "<anonymous>"
	}

	return fmt.Sprintf("%s (%s)", u.Email(), u.ID())
}
