package repo

import (
	"context"
	"testing"

	"github.com/setrep/go-workout-backend/internal/domain"
)

func TestFormatWeight_TwoFractionDigits(t *testing.T) {
	cases := map[float64]string{
		0:      "0.00",
		135.5:  "135.50",
		225:    "225.00",
		50.50:  "50.50",
		102.25: "102.25",
	}
	for in, want := range cases {
		if got := FormatWeight(in); got != want {
			t.Fatalf("FormatWeight(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseWeight_RoundTripAndInvalid(t *testing.T) {
	for _, w := range []float64{0, 135.5, 225, 50.50, 102.25} {
		got, err := ParseWeight(FormatWeight(w))
		if err != nil {
			t.Fatalf("ParseWeight(FormatWeight(%v)): %v", w, err)
		}
		if got != w {
			t.Fatalf("round-trip mismatch: in %v, out %v", w, got)
		}
	}

	if _, err := ParseWeight("not-a-number"); err == nil {
		t.Fatalf("expected parse error for garbage input")
	}
}

func TestCreateSet_StoresDecimalTextEchoesNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "w@example.com")
	sess, err := CreateSession(ctx, db, uid, rid, "Bench day")
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	ws, err := CreateSet(ctx, db, sess.ID, "Bench press", 1, 8, 135.5)
	if err != nil {
		t.Fatalf("CreateSet: %v", err)
	}
	if ws.ID == 0 || ws.SessionID != sess.ID || ws.SetNumber != 1 || ws.Reps != 8 {
		t.Fatalf("unexpected WorkoutSet fields: %+v", ws)
	}
	if ws.Weight != 135.5 {
		t.Fatalf("weight not echoed as number: %v", ws.Weight)
	}

	// The column must hold fixed two-fraction-digit decimal text.
	var raw string
	if err := db.Model(&domain.WorkoutSet{}).
		Where("id = ?", ws.ID).
		Select("weight").
		Scan(&raw).Error; err != nil {
		t.Fatalf("read raw weight: %v", err)
	}
	if raw != "135.50" {
		t.Fatalf("stored weight = %q, want %q", raw, "135.50")
	}
}

func TestCreateSet_ZeroWeightAllowed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "w2@example.com")
	sess, err := CreateSession(ctx, db, uid, rid, "Calisthenics")
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	ws, err := CreateSet(ctx, db, sess.ID, "Pull-up", 1, 12, 0)
	if err != nil {
		t.Fatalf("CreateSet: %v", err)
	}
	if ws.Weight != 0 {
		t.Fatalf("expected zero weight, got %v", ws.Weight)
	}
}

func TestCreateSet_UnknownSession_FKError(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateSet(context.Background(), db, 9999, "Ghost", 1, 5, 100)
	if err == nil {
		t.Fatalf("expected foreign-key error for unknown session")
	}
}

func TestListSetsBySessions_DecodesAndFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid, rid := seedUserRoutine(t, db, "w3@example.com")

	s1, err := CreateSession(ctx, db, uid, rid, "Day 1")
	if err != nil {
		t.Fatalf("seed s1: %v", err)
	}
	s2, err := CreateSession(ctx, db, uid, rid, "Day 2")
	if err != nil {
		t.Fatalf("seed s2: %v", err)
	}

	weights := []float64{225, 50.50, 0}
	for i, w := range weights {
		if _, err := CreateSet(ctx, db, s1.ID, "Squat", i+1, 5, w); err != nil {
			t.Fatalf("seed set: %v", err)
		}
	}
	if _, err := CreateSet(ctx, db, s2.ID, "Deadlift", 1, 3, 315); err != nil {
		t.Fatalf("seed set: %v", err)
	}

	got, err := ListSetsBySessions(ctx, db, []uint{s1.ID})
	if err != nil {
		t.Fatalf("ListSetsBySessions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(got))
	}
	for i, w := range weights {
		if got[i].Weight != w {
			t.Fatalf("set %d: weight %v, want %v", i, got[i].Weight, w)
		}
		if got[i].SessionID != s1.ID {
			t.Fatalf("leaked set from another session: %+v", got[i])
		}
	}
}

func TestListSetsBySessions_EmptyIDs_ShortCircuits(t *testing.T) {
	db := newTestDB(t)

	got, err := ListSetsBySessions(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("ListSetsBySessions(nil): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
