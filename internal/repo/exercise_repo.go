// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Exercise
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// CreateExercise inserts a new Exercise row under routineID. On failure, the
// raw DB error is returned (a bad routineID surfaces as a foreign-key
// constraint error).
func CreateExercise(ctx context.Context, db *gorm.DB, routineID uint, name string, orderIndex int) (*domain.Exercise, error) {
	e := &domain.Exercise{
		RoutineID:  routineID,
		Name:       name,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListExercisesByRoutines returns the exercises of every routine in
// routineIDs, ordered by OrderIndex ascending with id (insertion order) as
// tiebreak. The caller groups rows by RoutineID. An empty routineIDs slice
// short-circuits to an empty result without touching the store.
func ListExercisesByRoutines(ctx context.Context, db *gorm.DB, routineIDs []uint) ([]domain.Exercise, error) {
	if len(routineIDs) == 0 {
		return []domain.Exercise{}, nil
	}
	var out []domain.Exercise
	err := db.WithContext(ctx).
		Where("routine_id IN ?", routineIDs).
		Order("order_index ASC, id ASC").
		Find(&out).Error
	return out, err
}
