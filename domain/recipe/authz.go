package recipe

import (
	"github.com/example/recipe-share/domain/user"
)

// CanMutate decides whether the acting identity may update or delete a
// recipe owned by owner. Admins may mutate anything; everyone else only
// their own recipes. System-owned recipes never match a user id, so they
// are admin-only.
//
// This is the single authorization rule for recipe mutation; update and
// delete both go through it.
func CanMutate(actorID int64, role user.Role, owner Owner) bool {
	if role == user.RoleAdmin {
		return true
	}
	ownerID, ok := owner.UserID()
	return ok && ownerID == actorID
}
