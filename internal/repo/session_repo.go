// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Session
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// CreateSession inserts a new Session row. CompletedAt defaults to the
// insertion time (UTC), matching the column default of the schema. On failure,
// the raw DB error is returned (a bad userID or routineID surfaces as a
// foreign-key constraint error).
func CreateSession(ctx context.Context, db *gorm.DB, userID, routineID uint, name string) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		UserID:      userID,
		RoutineID:   routineID,
		Name:        name,
		CompletedAt: now,
		CreatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a single session by id. If the record does not exist, it
// returns ErrNotFound. On other DB errors, the raw error is returned.
func GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions returns all sessions belonging to userID in the store's
// natural retrieval order. No ORDER BY is applied: the history aggregation
// deliberately preserves retrieval order rather than imposing one.
func ListSessions(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Session, error) {
	var out []domain.Session
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}
