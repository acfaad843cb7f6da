// Package services – RoutineService
//
// This file implements the RoutineService, which manages workout routines and
// their ordered exercises. It normalizes names, translates store constraint
// errors into service sentinels, and performs the routines-with-exercises
// aggregation: a select per table followed by in-memory grouping into typed
// composites (no reliance on a dynamically-shaped join result).
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// RoutineRepo defines the repository contract required by RoutineService.
type RoutineRepo interface {
	// CreateRoutine inserts a new routine row for the given user.
	CreateRoutine(ctx context.Context, db *gorm.DB, userID uint, name string, description *string) (*domain.Routine, error)

	// CreateExercise inserts a new exercise row under the given routine.
	CreateExercise(ctx context.Context, db *gorm.DB, routineID uint, name string, orderIndex int) (*domain.Exercise, error)

	// ListRoutines returns all routines of the user, newest first.
	ListRoutines(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Routine, error)

	// ListExercisesByRoutines returns the exercises of the given routines,
	// ordered by order index with insertion-order tiebreak.
	ListExercisesByRoutines(ctx context.Context, db *gorm.DB, routineIDs []uint) ([]domain.Exercise, error)
}

// RoutineService provides routine-level operations: creating routines,
// attaching exercises, and the grouped read model.
type RoutineService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the routine repository used by this service.
	Repo RoutineRepo
}

// NewRoutineService constructs a RoutineService.
func NewRoutineService(db *gorm.DB, r RoutineRepo) *RoutineService {
	return &RoutineService{DB: db, Repo: r}
}

// Create inserts a new routine owned by userID. The name is trimmed and must
// be non-blank (ErrEmptyName). A blank or absent description is stored as
// NULL. A userID that references no account yields ErrInvalidReference.
//
// Creating a routine and its exercises is deliberately non-atomic: the client
// issues one call per exercise after this one, and a partial failure leaves a
// routine with fewer exercises, never a dangling exercise.
func (s *RoutineService) Create(ctx context.Context, userID uint, name string, description *string) (*domain.Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		description = nil
	}

	r, err := s.Repo.CreateRoutine(ctx, s.DB, userID, name, description)
	if err != nil {
		if isFKViolation(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return r, nil
}

// AddExercise inserts an exercise under routineID at the given order index.
// The name is trimmed and must be non-blank (ErrEmptyName); a negative order
// index yields ErrNegativeOrder; a routineID that references no routine
// yields ErrInvalidReference.
//
// Order indexes are not required to be contiguous or unique within a routine.
func (s *RoutineService) AddExercise(ctx context.Context, routineID uint, name string, orderIndex int) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if orderIndex < 0 {
		return nil, ErrNegativeOrder
	}

	e, err := s.Repo.CreateExercise(ctx, s.DB, routineID, name, orderIndex)
	if err != nil {
		if isFKViolation(err) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return e, nil
}

// ListWithExercises returns every routine of userID together with its
// exercises, as typed composites.
//
// Ordering:
//   - routines: created_at descending (newest first)
//   - exercises within a routine: order_index ascending, insertion order on ties
//
// A routine with zero exercises is returned with an empty (non-nil) exercises
// slice, never omitted. A user with no routines yields an empty slice.
func (s *RoutineService) ListWithExercises(ctx context.Context, userID uint) ([]domain.RoutineWithExercises, error) {
	tr := otel.Tracer("services/RoutineService")
	ctx, span := tr.Start(ctx, "ListWithExercises",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	routines, err := s.Repo.ListRoutines(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(routines))
	for i, r := range routines {
		ids[i] = r.ID
	}

	exercises, err := s.Repo.ListExercisesByRoutines(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	// Rows arrive ordered (order_index, id); appending preserves that order
	// within each routine's group.
	byRoutine := make(map[uint][]domain.Exercise, len(routines))
	for _, e := range exercises {
		byRoutine[e.RoutineID] = append(byRoutine[e.RoutineID], e)
	}

	out := make([]domain.RoutineWithExercises, 0, len(routines))
	for _, r := range routines {
		ex := byRoutine[r.ID]
		if ex == nil {
			ex = []domain.Exercise{}
		}
		out = append(out, domain.RoutineWithExercises{Routine: r, Exercises: ex})
	}
	return out, nil
}
