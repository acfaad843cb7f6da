package repo

import (
	"context"
	"testing"
	"time"

	"github.com/setrep/go-workout-backend/internal/domain"
)

func TestCreateRoutine_WithAndWithoutDescription(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "r@example.com", "pw123456", "Ray")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	desc := "Chest, shoulders, triceps"
	withDesc, err := CreateRoutine(ctx, db, u.ID, "Push day", &desc)
	if err != nil {
		t.Fatalf("CreateRoutine: %v", err)
	}
	if withDesc.ID == 0 || withDesc.UserID != u.ID || withDesc.Name != "Push day" {
		t.Fatalf("unexpected Routine fields: %+v", withDesc)
	}
	if withDesc.Description == nil || *withDesc.Description != desc {
		t.Fatalf("description not persisted: %+v", withDesc.Description)
	}

	noDesc, err := CreateRoutine(ctx, db, u.ID, "Pull day", nil)
	if err != nil {
		t.Fatalf("CreateRoutine (nil description): %v", err)
	}
	var got domain.Routine
	if err := db.First(&got, "id = ?", noDesc.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("expected NULL description, got %q", *got.Description)
	}
}

func TestCreateRoutine_UnknownUser_FKError(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateRoutine(context.Background(), db, 9999, "Ghost", nil)
	if err == nil {
		t.Fatalf("expected foreign-key error for unknown user")
	}
}

func TestListRoutines_NewestFirstAndScopedToUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u1, err := CreateUser(ctx, db, "u1@example.com", "pw123456", "One")
	if err != nil {
		t.Fatalf("seed u1: %v", err)
	}
	u2, err := CreateUser(ctx, db, "u2@example.com", "pw123456", "Two")
	if err != nil {
		t.Fatalf("seed u2: %v", err)
	}

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	t3 := t1.Add(2 * time.Hour) // newest
	rows := []domain.Routine{
		{UserID: u1.ID, Name: "oldest", CreatedAt: t1},
		{UserID: u1.ID, Name: "middle", CreatedAt: t2},
		{UserID: u1.ID, Name: "newest", CreatedAt: t3},
		{UserID: u2.ID, Name: "other user", CreatedAt: t2},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed routine: %v", err)
		}
	}

	got, err := ListRoutines(ctx, db, u1.ID)
	if err != nil {
		t.Fatalf("ListRoutines: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 routines, got %d", len(got))
	}
	if got[0].Name != "newest" || got[1].Name != "middle" || got[2].Name != "oldest" {
		t.Fatalf("wrong order: %q, %q, %q", got[0].Name, got[1].Name, got[2].Name)
	}
	for _, r := range got {
		if r.UserID != u1.ID {
			t.Fatalf("leaked another user's routine: %+v", r)
		}
	}
}
