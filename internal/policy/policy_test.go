package policy

import (
	"testing"

	"triviahub/backend/internal/apierr"
)

func TestCanCreateGameRoles(t *testing.T) {
	if err := CanCreateGame(Actor{ID: 1, Role: RoleEditor}, false); err != nil {
		t.Fatalf("editor without a game should be allowed, got %v", err)
	}
	if err := CanCreateGame(Actor{ID: 1, Role: RoleAdmin}, false); err != nil {
		t.Fatalf("admin should be allowed, got %v", err)
	}
	if err := CanCreateGame(Actor{ID: 1, Role: RoleUser}, false); err == nil {
		t.Fatal("plain user should be denied")
	}
}

func TestCanCreateGameSecondGameLimit(t *testing.T) {
	err := CanCreateGame(Actor{ID: 1, Role: RoleEditor}, true)
	if err == nil {
		t.Fatal("editor with a published game should be denied a second")
	}
	if apierr.KindOf(err) != apierr.Conflict {
		t.Fatalf("expected Conflict, got kind %v", apierr.KindOf(err))
	}

	if err := CanCreateGame(Actor{ID: 1, Role: RoleAdmin}, true); err != nil {
		t.Fatalf("admin is exempt from the one-game limit, got %v", err)
	}
}

func TestCanModifyGame(t *testing.T) {
	owner := Actor{ID: 7, Role: RoleEditor}
	if err := CanModifyGame(owner, 7); err != nil {
		t.Fatalf("owner should be allowed, got %v", err)
	}
	if err := CanModifyGame(Actor{ID: 8, Role: RoleAdmin}, 7); err != nil {
		t.Fatalf("admin should be allowed, got %v", err)
	}

	err := CanModifyGame(Actor{ID: 8, Role: RoleEditor}, 7)
	if err == nil {
		t.Fatal("non-owner editor should be denied")
	}
	if apierr.KindOf(err) != apierr.Unauthorized {
		t.Fatalf("expected Unauthorized, got kind %v", apierr.KindOf(err))
	}
}

// The question-create rule is role AND ownership: editors add questions only
// to their own games, admins anywhere. This is a deliberate resolution of a
// historic inconsistency; changing it to an OR is a behavior change.
func TestAddQuestionRequiresEditorRoleAndGameOwnership(t *testing.T) {
	if err := CanAddQuestion(Actor{ID: 1, Role: RoleEditor}, 1); err != nil {
		t.Fatalf("editor who owns the game should be allowed, got %v", err)
	}
	if err := CanAddQuestion(Actor{ID: 2, Role: RoleEditor}, 1); err == nil {
		t.Fatal("editor who does not own the game should be denied")
	}
	if err := CanAddQuestion(Actor{ID: 1, Role: RoleUser}, 1); err == nil {
		t.Fatal("game owner without the editor role should be denied")
	}
	if err := CanAddQuestion(Actor{ID: 2, Role: RoleAdmin}, 1); err != nil {
		t.Fatalf("admin should be allowed on any game, got %v", err)
	}
}

func TestCanModifyQuestionChecksRecordedOwner(t *testing.T) {
	if err := CanModifyQuestion(Actor{ID: 3, Role: RoleEditor}, 3); err != nil {
		t.Fatalf("recorded author should be allowed, got %v", err)
	}
	if err := CanModifyQuestion(Actor{ID: 4, Role: RoleEditor}, 3); err == nil {
		t.Fatal("non-author should be denied")
	}
	if err := CanModifyQuestion(Actor{ID: 4, Role: RoleAdmin}, 3); err != nil {
		t.Fatalf("admin should be allowed, got %v", err)
	}
}

func TestCanCreateReviewRoles(t *testing.T) {
	if err := CanCreateReview(Actor{ID: 1, Role: RoleUser}); err != nil {
		t.Fatalf("user should be allowed, got %v", err)
	}
	if err := CanCreateReview(Actor{ID: 1, Role: RoleAdmin}); err != nil {
		t.Fatalf("admin should be allowed, got %v", err)
	}
	if err := CanCreateReview(Actor{ID: 1, Role: RoleEditor}); err == nil {
		t.Fatal("editor should be denied")
	}
}

func TestCanModifyReview(t *testing.T) {
	if err := CanModifyReview(Actor{ID: 5, Role: RoleUser}, 5); err != nil {
		t.Fatalf("author should be allowed, got %v", err)
	}
	if err := CanModifyReview(Actor{ID: 6, Role: RoleUser}, 5); err == nil {
		t.Fatal("non-author should be denied")
	}
	if err := CanModifyReview(Actor{ID: 6, Role: RoleAdmin}, 5); err != nil {
		t.Fatalf("admin should be allowed, got %v", err)
	}
}

func TestDenialCarriesActorID(t *testing.T) {
	err := CanModifyGame(Actor{ID: 42, Role: RoleUser}, 7)
	if err == nil {
		t.Fatal("expected denial")
	}
	if want := "User 42 is not authorized to modify this game"; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
