// Package services – WorkoutService
//
// This file implements the WorkoutService, which owns workout sessions and
// their logged sets. It validates inputs, translates store constraint errors
// into service sentinels, and performs the two sessions-with-sets
// aggregations (full history per user, single session by id) by grouping a
// second select's rows under their parent sessions.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// WorkoutRepo defines the repository contract required by WorkoutService.
type WorkoutRepo interface {
	// CreateSession inserts a new session row; completed_at defaults to now.
	CreateSession(ctx context.Context, db *gorm.DB, userID, routineID uint, name string) (*domain.Session, error)

	// CreateSet inserts a new set row, handling the decimal weight boundary.
	CreateSet(ctx context.Context, db *gorm.DB, sessionID uint, exerciseName string, setNumber, reps int, weight float64) (*domain.WorkoutSet, error)

	// GetSession fetches a session by id or repo.ErrNotFound.
	GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error)

	// ListSessions returns the user's sessions in natural retrieval order.
	ListSessions(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Session, error)

	// ListSetsBySessions returns the sets of the given sessions with weights
	// decoded, in natural retrieval order.
	ListSetsBySessions(ctx context.Context, db *gorm.DB, sessionIDs []uint) ([]domain.WorkoutSet, error)
}

// WorkoutService provides session-level operations: starting sessions,
// logging sets, and the grouped history read models.
type WorkoutService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the workout repository used by this service.
	Repo WorkoutRepo
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(db *gorm.DB, r WorkoutRepo) *WorkoutService {
	return &WorkoutService{DB: db, Repo: r}
}

// Start creates a session of routineID for userID. The name is trimmed and
// must be non-blank (ErrEmptyName). Either foreign key referencing a missing
// record yields ErrInvalidReference. CompletedAt is assigned at insertion.
func (s *WorkoutService) Start(ctx context.Context, userID, routineID uint, name string) (*domain.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	sess, err := s.Repo.CreateSession(ctx, s.DB, userID, routineID, name)
	if err != nil {
		if isFKViolation(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return sess, nil
}

// LogSet records one set (reps x weight) against sessionID. The exercise name
// is free text and is NOT checked against the routine's exercise list; that
// decoupling is part of the data model. Validation: non-blank exercise name,
// positive set number and reps, non-negative weight. A sessionID referencing
// no session yields ErrInvalidReference.
func (s *WorkoutService) LogSet(ctx context.Context, sessionID uint, exerciseName string, setNumber, reps int, weight float64) (*domain.WorkoutSet, error) {
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil, ErrEmptyName
	}
	if setNumber < 1 {
		return nil, ErrInvalidSetNumber
	}
	if reps < 1 {
		return nil, ErrInvalidReps
	}
	if weight < 0 {
		return nil, ErrInvalidWeight
	}

	ws, err := s.Repo.CreateSet(ctx, s.DB, sessionID, exerciseName, setNumber, reps, weight)
	if err != nil {
		if isFKViolation(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return ws, nil
}

// History returns every session of userID together with its sets, as typed
// composites. Sessions keep the store's natural retrieval order (no re-sort
// is applied); sets are grouped by session id. A session with zero sets is
// returned with an empty (non-nil) sets slice, never omitted. A user with no
// sessions yields an empty slice.
func (s *WorkoutService) History(ctx context.Context, userID uint) ([]domain.SessionWithSets, error) {
	tr := otel.Tracer("services/WorkoutService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	sessions, err := s.Repo.ListSessions(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}

	sets, err := s.Repo.ListSetsBySessions(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	bySession := make(map[uint][]domain.WorkoutSet, len(sessions))
	for _, ws := range sets {
		bySession[ws.SessionID] = append(bySession[ws.SessionID], ws)
	}

	out := make([]domain.SessionWithSets, 0, len(sessions))
	for _, sess := range sessions {
		group := bySession[sess.ID]
		if group == nil {
			group = []domain.WorkoutSet{}
		}
		out = append(out, domain.SessionWithSets{Session: sess, Sets: group})
	}
	return out, nil
}

// Details returns the single session sessionID together with its sets.
// A missing session yields ErrSessionNotFound; a session with zero sets is a
// success with an empty sets slice.
func (s *WorkoutService) Details(ctx context.Context, sessionID uint) (*domain.SessionWithSets, error) {
	tr := otel.Tracer("services/WorkoutService")
	ctx, span := tr.Start(ctx, "Details",
		trace.WithAttributes(attribute.Int64("session.id", int64(sessionID))),
	)
	defer span.End()

	sess, err := s.Repo.GetSession(ctx, s.DB, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	sets, err := s.Repo.ListSetsBySessions(ctx, s.DB, []uint{sessionID})
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []domain.WorkoutSet{}
	}
	return &domain.SessionWithSets{Session: *sess, Sets: sets}, nil
}
