package gorm

import (
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

type User struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Email       string `gorm:"unique"`
	DisplayName string

	Superuser bool
	Active    bool

	AuthTokens []*AuthToken `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
}

type AuthToken struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner   *User
	OwnerID string `gorm:"index"`

	Label string
	Value string `gorm:"unique"`
}

type wrappedUser struct {
	u *User
}

// ID implements [model.User].
func (w *wrappedUser) ID() model.UserID {
	return model.UserID(w.u.ID)
}

// Email implements [model.User].
func (w *wrappedUser) Email() string {
	return w.u.Email
}

// DisplayName implements [model.User].
func (w *wrappedUser) DisplayName() string {
	return w.u.DisplayName
}

// IsSuperuser implements [model.User].
func (w *wrappedUser) IsSuperuser() bool {
	return w.u.Superuser
}

// Active implements [model.User].
func (w *wrappedUser) Active() bool {
	return w.u.Active
}

var _ model.User = &wrappedUser{}

func fromUser(u model.User) *User {
	return &User{
		ID:          string(u.ID()),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Superuser:   u.IsSuperuser(),
		Active:      u.Active(),
	}
}

type wrappedAuthToken struct {
	t *AuthToken
}

// ID implements [model.AuthToken].
func (w *wrappedAuthToken) ID() model.AuthTokenID {
	return model.AuthTokenID(w.t.ID)
}

// Label implements [model.AuthToken].
func (w *wrappedAuthToken) Label() string {
	return w.t.Label
}

// Owner implements [model.AuthToken].
func (w *wrappedAuthToken) Owner() model.User {
	return &wrappedUser{w.t.Owner}
}

// Value implements [model.AuthToken].
func (w *wrappedAuthToken) Value() string {
	return w.t.Value
}

var _ model.AuthToken = &wrappedAuthToken{}

func fromAuthToken(t model.AuthToken) *AuthToken {
	return &AuthToken{
		ID:      string(t.ID()),
		OwnerID: string(t.Owner().ID()),
		Label:   t.Label(),
		Value:   t.Value(),
	}
}
