package service

import (
	"testing"

	"github.com/bornholm/garden/internal/core/model"
)

func TestAuthorize(t *testing.T) {
	owner := model.NewUser("owner@example.com", "Owner", false)
	other := model.NewUser("other@example.com", "Other", false)
	superuser := model.NewUser("admin@example.com", "Admin", true)

	type testCase struct {
		Name      string
		Principal model.User
		OwnerID   model.UserID
		Expected  Decision
	}

	testCases := []testCase{
		{Name: "Owner", Principal: owner, OwnerID: owner.ID(), Expected: Allow},
		{Name: "OtherUser", Principal: other, OwnerID: owner.ID(), Expected: Deny},
		{Name: "Superuser", Principal: superuser, OwnerID: owner.ID(), Expected: Allow},
		{Name: "Anonymous", Principal: nil, OwnerID: owner.ID(), Expected: Deny},
		{Name: "OwnerlessAsUser", Principal: owner, OwnerID: "", Expected: Deny},
		{Name: "OwnerlessAsSuperuser", Principal: superuser, OwnerID: "", Expected: Allow},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if e, g := tc.Expected, Authorize(tc.Principal, tc.OwnerID); e != g {
				t.Errorf("Authorize(): expected %v, got %v", e, g)
			}
		})
	}
}
