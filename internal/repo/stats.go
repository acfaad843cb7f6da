// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer.
//
// Rows are insert-once, so parent count + child count + max parent created_at
// fully identifies an aggregation's state: the child count must be included
// because children can be added without touching any parent row.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// RoutineStats returns aggregate metadata for the routines-with-exercises
// collection of a user: the number of routines, the number of exercises
// across those routines, and the maximum routine CreatedAt. When the user has
// no routines, counts are 0 and maxCreatedAt is nil.
func RoutineStats(ctx context.Context, db *gorm.DB, userID uint) (routines, exercises int64, maxCreatedAt *time.Time, err error) {
	if err = db.WithContext(ctx).
		Model(&domain.Routine{}).
		Where("user_id = ?", userID).
		Count(&routines).Error; err != nil {
		return 0, 0, nil, err
	}
	if routines == 0 {
		return 0, 0, nil, nil
	}

	err = db.WithContext(ctx).
		Model(&domain.Exercise{}).
		Joins("JOIN workout_routines ON workout_routines.id = exercises.routine_id").
		Where("workout_routines.user_id = ?", userID).
		Count(&exercises).Error
	if err != nil {
		return 0, 0, nil, err
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = db.WithContext(ctx).
		Model(&domain.Routine{}).
		Where("user_id = ?", userID).
		Select("created_at").Order("created_at DESC").Limit(1).
		Scan(&row).Error; err != nil {
		return 0, 0, nil, err
	}
	return routines, exercises, &row.CreatedAt, nil
}

// SessionStats returns aggregate metadata for the sessions-with-sets
// collection of a user: the number of sessions, the number of sets across
// those sessions, and the maximum session CreatedAt. When the user has no
// sessions, counts are 0 and maxCreatedAt is nil.
func SessionStats(ctx context.Context, db *gorm.DB, userID uint) (sessions, sets int64, maxCreatedAt *time.Time, err error) {
	if err = db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ?", userID).
		Count(&sessions).Error; err != nil {
		return 0, 0, nil, err
	}
	if sessions == 0 {
		return 0, 0, nil, nil
	}

	err = db.WithContext(ctx).
		Model(&domain.WorkoutSet{}).
		Joins("JOIN workout_sessions ON workout_sessions.id = workout_sets.session_id").
		Where("workout_sessions.user_id = ?", userID).
		Count(&sets).Error
	if err != nil {
		return 0, 0, nil, err
	}

	var row struct {
		CreatedAt time.Time
	}
	if err = db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ?", userID).
		Select("created_at").Order("created_at DESC").Limit(1).
		Scan(&row).Error; err != nil {
		return 0, 0, nil, err
	}
	return sessions, sets, &row.CreatedAt, nil
}
