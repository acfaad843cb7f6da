// Routine HTTP handlers.
//
// This file exposes the routine endpoints:
//   - POST /routines              (create routine)
//   - POST /exercises             (attach exercise to a routine)
//   - GET  /users/{id}/routines   (routines with exercises, ETag support)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
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

// CreateRoutineRequest is the JSON payload for creating a routine.
type CreateRoutineRequest struct {
	UserID uint   `json:"user_id" binding:"required"       example:"1"`
	Name   string `json:"name"    binding:"required,min=1" example:"Push day"`
	// Description is optional; blank strings are stored as null.
	Description *string `json:"description" example:"Chest, shoulders, triceps"`
}

// CreateExerciseRequest is the JSON payload for attaching an exercise.
//
// OrderIndex may legitimately be zero, so it carries no `required` tag; range
// checking happens via gte plus the service layer.
type CreateExerciseRequest struct {
	RoutineID  uint   `json:"routine_id"  binding:"required"       example:"1"`
	Name       string `json:"name"        binding:"required,min=1" example:"Bench press"`
	OrderIndex int    `json:"order_index" binding:"gte=0"          example:"0"`
}

//
// Handlers
//

// CreateRoutine godoc
// @ID          createRoutine
// @Summary     Create a workout routine
// @Description Creates a routine owned by the given user and returns it.
// @Tags        Routines
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateRoutineRequest  true  "Create routine payload"
//
// @Success     201  {object}  domain.Routine
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Owner does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /routines [post]
func (h *Handlers) CreateRoutine(c *gin.Context) {
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and name are required")
		return
	}

	r, err := h.routineSvc.Create(c.Request.Context(), req.UserID, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name must not be blank")
		case errors.Is(err, services.ErrInvalidReference):
			fail(c, http.StatusConflict, ErrCodeConflict, "user does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, r)
}

// CreateExercise godoc
// @ID          createExercise
// @Summary     Add an exercise to a routine
// @Description Appends a named exercise at the given order index and returns it.
// @Tags        Routines
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateExerciseRequest  true  "Create exercise payload"
//
// @Success     201  {object}  domain.Exercise
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Routine does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /exercises [post]
func (h *Handlers) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "routine_id, name and a non-negative order_index are required")
		return
	}

	e, err := h.routineSvc.AddExercise(c.Request.Context(), req.RoutineID, req.Name, req.OrderIndex)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrNegativeOrder):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidReference):
			fail(c, http.StatusConflict, ErrCodeConflict, "routine does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, e)
}

// ListRoutines godoc
// @ID          listRoutines
// @Summary     List a user's routines with exercises
// @Description Returns every routine of the user (newest first) with its exercises ordered by order_index. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Routines
// @Produce     json
//
// @Param       id             path    int     true  "User ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.RoutineWithExercises
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/routines [get]
func (h *Handlers) ListRoutines(c *gin.Context) {
	ctx := c.Request.Context()
	uid, okID := uintParam(c, "id")
	if !okID {
		return
	}

	// ETag pre-check (best effort). Insert-only tables make the
	// (counts, max created_at) triple a faithful version of the result.
	var db *gorm.DB
	if svc, isSvc := h.routineSvc.(*services.RoutineService); isSvc {
		db = svc.DB
	}
	if db != nil {
		routines, exercises, maxTS, err := repo.RoutineStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"routines:%d:%d:%d:%d"`, uid, routines, exercises, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.routineSvc.ListWithExercises(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}
