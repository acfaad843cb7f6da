// Workout HTTP handlers.
//
// This file exposes the session and set endpoints:
//   - POST /sessions            (start a workout session)
//   - POST /sets                (log one set against a session)
//   - GET  /users/{id}/history  (sessions with sets, ETag support)
//   - GET  /sessions/{id}       (single session with sets)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/repo"
	"github.com/setrep/go-workout-backend/internal/services"
)

//
// DTOs
//

// CreateSessionRequest is the JSON payload for starting a workout session.
type CreateSessionRequest struct {
	UserID    uint   `json:"user_id"    binding:"required"       example:"1"`
	RoutineID uint   `json:"routine_id" binding:"required"       example:"1"`
	Name      string `json:"name"       binding:"required,min=1" example:"Push day Monday"`
}

// CreateSetRequest is the JSON payload for logging a set.
//
// Weight may legitimately be zero (bodyweight work), so it carries no
// `required` tag; it is range-checked via gte plus the service layer. The
// exercise name is free text and is not validated against the routine.
type CreateSetRequest struct {
	SessionID    uint    `json:"session_id"    binding:"required"        example:"1"`
	ExerciseName string  `json:"exercise_name" binding:"required,min=1"  example:"Bench press"`
	SetNumber    int     `json:"set_number"    binding:"required,gt=0"   example:"1"`
	Reps         int     `json:"reps"          binding:"required,gt=0"   example:"8"`
	Weight       float64 `json:"weight"        binding:"gte=0"           example:"135.5"`
}

//
// Handlers
//

// CreateSession godoc
// @ID          createSession
// @Summary     Start a workout session
// @Description Creates a session of a routine for a user; completed_at defaults to now.
// @Tags        Workouts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateSessionRequest  true  "Create session payload"
//
// @Success     201  {object}  domain.Session
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "User or routine does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id, routine_id and name are required")
		return
	}

	s, err := h.workoutSvc.Start(c.Request.Context(), req.UserID, req.RoutineID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name must not be blank")
		case errors.Is(err, services.ErrInvalidReference):
			fail(c, http.StatusConflict, ErrCodeConflict, "user or routine does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, s)
}

// CreateSet godoc
// @ID          createSet
// @Summary     Log a set
// @Description Records one set (reps x weight) against a session; the weight is echoed back as a number.
// @Tags        Workouts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateSetRequest  true  "Create set payload"
//
// @Success     201  {object}  domain.WorkoutSet
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Session does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sets [post]
func (h *Handlers) CreateSet(c *gin.Context) {
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session_id, exercise_name, positive set_number/reps and a non-negative weight are required")
		return
	}

	ws, err := h.workoutSvc.LogSet(c.Request.Context(), req.SessionID, req.ExerciseName, req.SetNumber, req.Reps, req.Weight)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName),
			errors.Is(err, services.ErrInvalidSetNumber),
			errors.Is(err, services.ErrInvalidReps),
			errors.Is(err, services.ErrInvalidWeight):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidReference):
			fail(c, http.StatusConflict, ErrCodeConflict, "session does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, ws)
}

// History godoc
// @ID          getHistory
// @Summary     Get a user's workout history
// @Description Returns every session of the user with its sets grouped under it. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Workouts
// @Produce     json
//
// @Param       id             path    int     true  "User ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.SessionWithSets
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/history [get]
func (h *Handlers) History(c *gin.Context) {
	ctx := c.Request.Context()
	uid, okID := uintParam(c, "id")
	if !okID {
		return
	}

	// ETag pre-check (best effort), same shape as ListRoutines.
	var db *gorm.DB
	if svc, isSvc := h.workoutSvc.(*services.WorkoutService); isSvc {
		db = svc.DB
	}
	if db != nil {
		sessions, sets, maxTS, err := repo.SessionStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"history:%d:%d:%d:%d"`, uid, sessions, sets, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.workoutSvc.History(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// SessionDetails godoc
// @ID          getSessionDetails
// @Summary     Get one session with its sets
// @Description Returns the session and its sets; a session with zero sets is a success with an empty array.
// @Tags        Workouts
// @Produce     json
//
// @Param       id  path  int  true  "Session ID"
//
// @Success     200  {object}  domain.SessionWithSets
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Session not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /sessions/{id} [get]
func (h *Handlers) SessionDetails(c *gin.Context) {
	sid, okID := uintParam(c, "id")
	if !okID {
		return
	}

	item, err := h.workoutSvc.Details(c.Request.Context(), sid)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "workout session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, item)
}
