// Package domain defines the persistence models for users, workout routines,
// exercises, workout sessions, and logged sets. These types are mapped with
// GORM and form the core data layer of the workout tracking application.
package domain

import (
	"time"
)

// User is an account that owns routines and workout sessions.
//
// Fields:
//   - ID: auto-increment primary key assigned by the store.
//   - Email: unique login identifier.
//   - PasswordHash: stored credential. Verification is delegated to an external
//     collaborator and is not performed by this service (see AccountService).
//   - Name: display name.
//   - CreatedAt: insertion timestamp.
type User struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	Email        string    `json:"email"         gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"password_hash" gorm:"type:text;not null"`
	Name         string    `json:"name"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Routine is a named, reusable template of exercises owned by a user.
//
// Description is nullable; absent descriptions serialize as JSON null.
// Routines are cascade-deleted when their owner is removed.
type Routine struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	UserID      uint      `json:"user_id"     gorm:"not null;index:idx_user_routines"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// User is the owning account. Routines are cascade-deleted with it.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Routine.
func (Routine) TableName() string { return "workout_routines" }

// Exercise is one named step within a routine. OrderIndex defines display and
// iteration order; it is not required to be contiguous or unique within a
// routine, and ties fall back to insertion order.
type Exercise struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	RoutineID  uint      `json:"routine_id"  gorm:"not null;index:idx_routine_exercises"`
	Name       string    `json:"name"        gorm:"type:varchar(255);not null"`
	OrderIndex int       `json:"order_index" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	// Routine is the parent template. Exercises are cascade-deleted with it.
	Routine Routine `json:"-" gorm:"foreignKey:RoutineID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Exercise.
func (Exercise) TableName() string { return "exercises" }

// Session is one concrete occurrence of performing a routine. CompletedAt
// defaults to the insertion time; both foreign keys cascade on delete.
type Session struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	UserID      uint      `json:"user_id"      gorm:"not null;index:idx_user_sessions"`
	RoutineID   uint      `json:"routine_id"   gorm:"not null;index"`
	Name        string    `json:"name"         gorm:"type:varchar(255);not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Routine Routine `json:"-" gorm:"foreignKey:RoutineID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "workout_sessions" }

// WorkoutSet is one logged unit of work (reps x weight) within a session.
//
// ExerciseName is free text, deliberately NOT a foreign key to Exercise: a set
// may reference an exercise name that no longer exists in the routine's
// exercise list, and no referential integrity is enforced between the two.
//
// Weight is stored as fixed-point decimal text (decimal(8,2)) to avoid
// floating-point drift at rest, and exposed to the application and on the wire
// as a plain number. The repo layer owns the conversion in both directions;
// WeightRaw never leaves the persistence boundary.
type WorkoutSet struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	SessionID    uint      `json:"session_id"    gorm:"not null;index:idx_session_sets"`
	ExerciseName string    `json:"exercise_name" gorm:"type:varchar(255);not null"`
	SetNumber    int       `json:"set_number"    gorm:"not null"`
	Reps         int       `json:"reps"          gorm:"not null"`
	Weight       float64   `json:"weight"        gorm:"-"`
	WeightRaw    string    `json:"-"             gorm:"column:weight;type:decimal(8,2);not null"`
	CreatedAt    time.Time `json:"created_at"`

	// Session is the parent occurrence. Sets are cascade-deleted with it.
	Session Session `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WorkoutSet.
func (WorkoutSet) TableName() string { return "workout_sets" }

// RoutineWithExercises is the typed composite returned by the
// routines-with-exercises aggregation: a routine together with its exercises
// ordered by OrderIndex (insertion order on ties). Exercises is always
// non-nil; a routine without exercises carries an empty slice.
type RoutineWithExercises struct {
	Routine
	Exercises []Exercise `json:"exercises"`
}

// SessionWithSets is the typed composite returned by both session
// aggregations: a session together with its logged sets. Sets is always
// non-nil; a session without sets carries an empty slice.
type SessionWithSets struct {
	Session
	Sets []WorkoutSet `json:"sets"`
}
