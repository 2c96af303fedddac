package service

import (
	"testing"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"
)

func TestCreateGameSetsOwnerAndSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, editor := seedUser(t, db, "ed", models.RoleEditor)

	game := models.Game{Name: "Space Trivia Night", Description: "d"}
	if err := svc.Create(editor, &game); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if game.UserID != editor.ID {
		t.Fatalf("expected owner %d, got %d", editor.ID, game.UserID)
	}
	if game.Slug != "space-trivia-night" {
		t.Fatalf("expected slug space-trivia-night, got %q", game.Slug)
	}
}

func TestCreateGameSecondDeniedForNonAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, editor := seedUser(t, db, "ed", models.RoleEditor)

	first := models.Game{Name: "First", Description: "d"}
	if err := svc.Create(editor, &first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := models.Game{Name: "Second", Description: "d"}
	err := svc.Create(editor, &second)
	if err == nil {
		t.Fatal("expected second create to be rejected")
	}
	if apierr.KindOf(err) != apierr.Conflict {
		t.Fatalf("expected Conflict, got kind %v", apierr.KindOf(err))
	}
}

func TestCreateGameAdminExemptFromLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, admin := seedUser(t, db, "adm", models.RoleAdmin)

	for _, name := range []string{"One", "Two", "Three"} {
		game := models.Game{Name: name, Description: "d"}
		if err := svc.Create(admin, &game); err != nil {
			t.Fatalf("admin create %s failed: %v", name, err)
		}
	}
}

func TestCreateGameDuplicateNameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, admin := seedUser(t, db, "adm", models.RoleAdmin)

	game := models.Game{Name: "Same Name", Description: "d"}
	if err := svc.Create(admin, &game); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	dup := models.Game{Name: "Same Name", Description: "d"}
	err := svc.Create(admin, &dup)
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if apierr.KindOf(err) != apierr.Conflict {
		t.Fatalf("expected Conflict, got kind %v", apierr.KindOf(err))
	}
}

func TestUpdateGameRegeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	owner, actor := seedUser(t, db, "ed", models.RoleEditor)
	game := seedGame(t, db, owner, "Old Name")

	updated, err := svc.Update(actor, game.ID, "Brand New Name", "d2")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "brand-new-name" {
		t.Fatalf("expected slug brand-new-name, got %q", updated.Slug)
	}
}

func TestUpdateGameNonOwnerDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	owner, _ := seedUser(t, db, "ed", models.RoleEditor)
	_, other := seedUser(t, db, "other", models.RoleEditor)
	game := seedGame(t, db, owner, "Owned")

	_, err := svc.Update(other, game.ID, "Hijacked", "d")
	if err == nil {
		t.Fatal("expected non-owner update to be denied")
	}
	if apierr.KindOf(err) != apierr.Unauthorized {
		t.Fatalf("expected Unauthorized, got kind %v", apierr.KindOf(err))
	}
}

func TestUpdateGameAdminAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	owner, _ := seedUser(t, db, "ed", models.RoleEditor)
	_, admin := seedUser(t, db, "adm", models.RoleAdmin)
	game := seedGame(t, db, owner, "Owned")

	if _, err := svc.Update(admin, game.ID, "Moderated", "d"); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

// A missing game is reported as not found before any ownership evaluation,
// so even an unrelated actor sees 404 rather than a denial.
func TestGameNotFoundBeforeOwnershipCheck(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, user := seedUser(t, db, "u", models.RoleUser)

	_, err := svc.Update(user, 9999, "Nope", "d")
	if apierr.KindOf(err) != apierr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := svc.Delete(user, 9999); apierr.KindOf(err) != apierr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestDeleteGameCascadesQuestionsAndReviews(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	owner, actor := seedUser(t, db, "ed", models.RoleEditor)
	reviewer, _ := seedUser(t, db, "rev", models.RoleUser)
	game := seedGame(t, db, owner, "Doomed")
	other := seedGame(t, db, reviewer, "Survivor")

	questions := []models.Question{
		{Question: "Q1", GameID: game.ID, UserID: owner.ID},
		{Question: "Q2", GameID: game.ID, UserID: owner.ID},
		{Question: "Q3", GameID: other.ID, UserID: reviewer.ID},
	}
	if err := db.Create(&questions).Error; err != nil {
		t.Fatalf("failed to seed questions: %v", err)
	}
	review := models.Review{Title: "t", Text: "x", Rating: 5, GameID: game.ID, UserID: reviewer.ID}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}

	if err := svc.Delete(actor, game.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var remaining int64
	db.Model(&models.Question{}).Where("game_id = ?", game.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected no questions for deleted game, found %d", remaining)
	}
	db.Model(&models.Review{}).Where("game_id = ?", game.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected no reviews for deleted game, found %d", remaining)
	}

	// Neighboring game untouched
	db.Model(&models.Question{}).Where("game_id = ?", other.ID).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected the other game's question to survive, found %d", remaining)
	}
}

// Deleting a game frees its unique name (and the non-admin one-game limit),
// so the owner can publish a replacement under the same name.
func TestGameNameReusableAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	_, editor := seedUser(t, db, "ed", models.RoleEditor)

	game := models.Game{Name: "Reused", Description: "d"}
	if err := svc.Create(editor, &game); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(editor, game.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	replacement := models.Game{Name: "Reused", Description: "d2"}
	if err := svc.Create(editor, &replacement); err != nil {
		t.Fatalf("create after delete failed: %v", err)
	}
}

func TestDeleteGameNonOwnerDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	owner, _ := seedUser(t, db, "ed", models.RoleEditor)
	game := seedGame(t, db, owner, "Kept")

	err := svc.Delete(policy.Actor{ID: owner.ID + 100, Role: models.RoleEditor}, game.ID)
	if apierr.KindOf(err) != apierr.Unauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}

	var count int64
	db.Model(&models.Game{}).Where("id = ?", game.ID).Count(&count)
	if count != 1 {
		t.Fatal("game should still exist after denied delete")
	}
}
