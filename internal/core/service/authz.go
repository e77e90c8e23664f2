package service

import (
	"github.com/bornholm/garden/internal/core/model"
)

type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Authorize decides whether the principal may act on a resource owned by
// the given user. An empty owner id denotes an ownerless resource, only
// reachable by superusers.
func Authorize(principal model.User, ownerID model.UserID) Decision {
	if principal == nil {
		return Deny
	}

	if principal.IsSuperuser() {
		return Allow
	}

	if ownerID == "" {
		return Deny
	}

	return Decision(principal.ID() == ownerID)
}
