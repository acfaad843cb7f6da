// Account HTTP handlers.
//
// This file exposes the account endpoints:
//   - POST /users  (register)
//   - POST /login  (login)
//
// It also hosts the Handlers wiring shared by every endpoint in this package.
// Handlers are transport-thin: they validate input, call application services,
// and translate service errors into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/setrep/go-workout-backend/internal/domain"
	"github.com/setrep/go-workout-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AccountService interface {
	// Register creates an account and returns the persisted user.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login resolves an account by email; the credential is not verified here.
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// RoutineService defines routine operations consumed by HTTP handlers.
type RoutineService interface {
	// Create inserts a routine owned by userID.
	Create(ctx context.Context, userID uint, name string, description *string) (*domain.Routine, error)
	// AddExercise inserts an exercise under a routine.
	AddExercise(ctx context.Context, routineID uint, name string, orderIndex int) (*domain.Exercise, error)
	// ListWithExercises returns the grouped routines read model for a user.
	ListWithExercises(ctx context.Context, userID uint) ([]domain.RoutineWithExercises, error)
}

// WorkoutService defines session and set operations consumed by HTTP handlers.
type WorkoutService interface {
	// Start creates a session of a routine for a user.
	Start(ctx context.Context, userID, routineID uint, name string) (*domain.Session, error)
	// LogSet records one set against a session.
	LogSet(ctx context.Context, sessionID uint, exerciseName string, setNumber, reps int, weight float64) (*domain.WorkoutSet, error)
	// History returns the grouped sessions read model for a user.
	History(ctx context.Context, userID uint) ([]domain.SessionWithSets, error)
	// Details returns a single session with its sets.
	Details(ctx context.Context, sessionID uint) (*domain.SessionWithSets, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for accounts, routines, and workouts.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	accountSvc AccountService
	routineSvc RoutineService
	workoutSvc WorkoutService
}

// New constructs a Handlers instance bound to the given services.
func New(accountSvc AccountService, routineSvc RoutineService, workoutSvc WorkoutService) *Handlers {
	return &Handlers{accountSvc: accountSvc, routineSvc: routineSvc, workoutSvc: workoutSvc}
}

// uintParam parses the named path parameter as a positive integer id.
// The second return value is false when the parameter is not a valid id, in
// which case a 400 has already been written.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(v), true
}

//
// DTOs
//

// CreateUserRequest is the JSON payload for registering an account.
type CreateUserRequest struct {
	Email    string `json:"email"    binding:"required,email"  example:"lifter@example.com"`
	Password string `json:"password" binding:"required,min=6"  example:"hunter22"`
	Name     string `json:"name"     binding:"required,min=1"  example:"Alex"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"lifter@example.com"`
	Password string `json:"password" binding:"required"       example:"hunter22"`
}

//
// Handlers
//

// CreateUser godoc
// @ID          createUser
// @Summary     Register a new user
// @Description Creates an account and returns the persisted user record.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email, password (min 6 chars) and name are required")
		return
	}

	u, err := h.accountSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusConflict, ErrCodeConflict, "email already registered")
		case errors.Is(err, services.ErrEmptyName):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name must not be blank")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          loginUser
// @Summary     Log in
// @Description Resolves the account by email and returns the stored user record.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	u, err := h.accountSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, u)
}
