// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Routine
// model.
//
// Functions:
//
//   - CreateRoutine(ctx, db, userID, name, description) -> *domain.Routine, error
//     Inserts a new Routine row with store-assigned id and UTC timestamp.
//
//   - ListRoutines(ctx, db, userID) -> []domain.Routine, error
//     Returns all routines for a user, ordered by creation time descending.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.RoutineService) which performs the exercise grouping and
// error translation.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// CreateRoutine inserts a new Routine row owned by userID. description may be
// nil, which persists as SQL NULL. On failure, the raw DB error is returned
// (a bad userID surfaces as a foreign-key constraint error).
func CreateRoutine(ctx context.Context, db *gorm.DB, userID uint, name string, description *string) (*domain.Routine, error) {
	r := &domain.Routine{
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoutines returns all routines belonging to userID, ordered by creation
// time descending (most recent first). It returns an empty slice if the user
// has no routines. On DB error, it returns the error.
func ListRoutines(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Routine, error) {
	var out []domain.Routine
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
