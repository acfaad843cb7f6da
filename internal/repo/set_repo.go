// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the WorkoutSet
// model and owns the decimal coercion at the storage boundary.
//
// Weight semantics:
//   - On write, the float input is formatted to exactly two fractional digits
//     of decimal text ("225" -> "225.00") and stored in the weight column.
//   - On read, the stored text is parsed back into a float64 on the Weight
//     field. Zero and whole-number weights round-trip exactly.
//
// The raw column value (WeightRaw) never leaves this package.
package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// FormatWeight renders a weight as fixed two-fraction-digit decimal text for
// storage, e.g. 135.5 -> "135.50".
func FormatWeight(w float64) string {
	return decimal.NewFromFloat(w).StringFixed(2)
}

// ParseWeight parses stored decimal text back into a float64.
func ParseWeight(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// CreateSet inserts a new WorkoutSet row for sessionID. weight is accepted as
// a number, persisted as decimal text, and echoed back as a number on the
// returned row. On failure, the raw DB error is returned (a bad sessionID
// surfaces as a foreign-key constraint error).
func CreateSet(ctx context.Context, db *gorm.DB, sessionID uint, exerciseName string, setNumber, reps int, weight float64) (*domain.WorkoutSet, error) {
	ws := &domain.WorkoutSet{
		SessionID:    sessionID,
		ExerciseName: exerciseName,
		SetNumber:    setNumber,
		Reps:         reps,
		WeightRaw:    FormatWeight(weight),
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(ws).Error; err != nil {
		return nil, err
	}
	w, err := ParseWeight(ws.WeightRaw)
	if err != nil {
		return nil, err
	}
	ws.Weight = w
	return ws, nil
}

// ListSetsBySessions returns the sets of every session in sessionIDs in the
// store's natural retrieval order, with weights decoded. The caller groups
// rows by SessionID. An empty sessionIDs slice short-circuits to an empty
// result without touching the store.
func ListSetsBySessions(ctx context.Context, db *gorm.DB, sessionIDs []uint) ([]domain.WorkoutSet, error) {
	if len(sessionIDs) == 0 {
		return []domain.WorkoutSet{}, nil
	}
	var out []domain.WorkoutSet
	err := db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if err := decodeWeights(out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeWeights converts stored decimal text to float64 in place.
func decodeWeights(sets []domain.WorkoutSet) error {
	for i := range sets {
		w, err := ParseWeight(sets[i].WeightRaw)
		if err != nil {
			return err
		}
		sets[i].Weight = w
	}
	return nil
}
