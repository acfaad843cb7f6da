package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// seedUserRoutine creates one user and one routine for session tests.
func seedUserRoutine(t *testing.T, db *gorm.DB, email string) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	u, err := CreateUser(ctx, db, email, "pw123456", "Seed")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r, err := CreateRoutine(ctx, db, u.ID, "Routine", nil)
	if err != nil {
		t.Fatalf("seed routine: %v", err)
	}
	return u.ID, r.ID
}

func TestCreateSession_SetsCompletedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "s@example.com")

	start := time.Now().UTC().Add(-time.Minute)
	s, err := CreateSession(ctx, db, uid, rid, "Push day Monday")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.ID == 0 || s.UserID != uid || s.RoutineID != rid || s.Name != "Push day Monday" {
		t.Fatalf("unexpected Session fields: %+v", s)
	}
	if s.CompletedAt.Before(start) {
		t.Fatalf("CompletedAt seems unset: %v", s.CompletedAt)
	}
	if !s.CompletedAt.Equal(s.CreatedAt) {
		t.Fatalf("CompletedAt (%v) should equal CreatedAt (%v) at insertion", s.CompletedAt, s.CreatedAt)
	}
}

func TestCreateSession_UnknownParents_FKError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "s2@example.com")

	if _, err := CreateSession(ctx, db, 9999, rid, "bad user"); err == nil {
		t.Fatalf("expected FK error for unknown user")
	}
	if _, err := CreateSession(ctx, db, uid, 9999, "bad routine"); err == nil {
		t.Fatalf("expected FK error for unknown routine")
	}
}

func TestGetSession_FoundAndNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "s3@example.com")

	seed, err := CreateSession(ctx, db, uid, rid, "Leg day")
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	got, err := GetSession(ctx, db, seed.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != seed.ID || got.Name != "Leg day" {
		t.Fatalf("unexpected record: %+v", got)
	}

	_, err = GetSession(ctx, db, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessions_ScopedToUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u1, r1 := seedUserRoutine(t, db, "s4@example.com")
	u2, r2 := seedUserRoutine(t, db, "s5@example.com")

	for i := 0; i < 3; i++ {
		if _, err := CreateSession(ctx, db, u1, r1, "mine"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := CreateSession(ctx, db, u2, r2, "other"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := ListSessions(ctx, db, u1)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(got))
	}
	for _, s := range got {
		if s.UserID != u1 {
			t.Fatalf("leaked another user's session: %+v", s)
		}
	}

	var all []domain.Session
	if err := db.Find(&all).Error; err != nil {
		t.Fatalf("count all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 rows total, got %d", len(all))
	}
}
