// Package policy holds the authorization rules as pure decisions over an
// actor, an action, and the facts about the target resource. Callers resolve
// the resource (and return not-found) before consulting the policy.
package policy

import "triviahub/backend/internal/apierr"

// Roles recognized by the policy.
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func deny(a Actor, action string) error {
	return apierr.New(apierr.Unauthorized, "User %d is not authorized to %s", a.ID, action)
}

// CanCreateGame allows editors and admins. A non-admin who has already
// published a game is limited to that one; admins are exempt.
func CanCreateGame(a Actor, hasPublishedGame bool) error {
	if a.Role != RoleEditor && !a.IsAdmin() {
		return deny(a, "create a game")
	}
	if hasPublishedGame && !a.IsAdmin() {
		return apierr.New(apierr.Conflict, "The user with ID %d has already published a game", a.ID)
	}
	return nil
}

// CanModifyGame allows the game's owner or an admin. Covers update, delete
// and photo upload.
func CanModifyGame(a Actor, ownerID uint) error {
	if a.ID == ownerID || a.IsAdmin() {
		return nil
	}
	return deny(a, "modify this game")
}

// CanAddQuestion requires the editor or admin role and, for non-admins,
// ownership of the parent game.
func CanAddQuestion(a Actor, gameOwnerID uint) error {
	if a.Role != RoleEditor && !a.IsAdmin() {
		return deny(a, "add a question")
	}
	if a.ID != gameOwnerID && !a.IsAdmin() {
		return deny(a, "add a question to this game")
	}
	return nil
}

// CanModifyQuestion allows the question's recorded author or an admin.
func CanModifyQuestion(a Actor, ownerID uint) error {
	if a.ID == ownerID || a.IsAdmin() {
		return nil
	}
	return deny(a, "modify this question")
}

// CanCreateReview allows users and admins. Editors review nothing; they
// publish. The one-review-per-game rule is enforced by the store's unique
// index and surfaces as a Conflict.
func CanCreateReview(a Actor) error {
	if a.Role != RoleUser && !a.IsAdmin() {
		return deny(a, "create a review")
	}
	return nil
}

// CanModifyReview allows the review's author or an admin.
func CanModifyReview(a Actor, authorID uint) error {
	if a.ID == authorID || a.IsAdmin() {
		return nil
	}
	return deny(a, "modify this review")
}
