package goals

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/auth"
	"github.com/user/spendshift-go/validation"
)

// Handler exposes the goal endpoints; routes assume the auth middleware
// already resolved the current user.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the goal routes on a chi sub-router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{goalID}", h.update)
	r.Delete("/{goalID}", h.delete)
}

func currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("could not validate credentials", nil))
		return nil, false
	}
	return user, true
}

func goalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid goal id", err))
		return 0, false
	}
	return id, true
}

// list godoc
// @Summary List goals
// @Description Lists the current user's goals, earliest deadline first.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} goals.Goal
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /api/goals [get]
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	result, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, result)
}

// create godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body goals.CreateRequest true "Goal fields"
// @Success 201 {object} goals.Goal
// @Failure 400 {object} apperror.ErrorResponse "Validation failure"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /api/goals [post]
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Struct(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	goal, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, goal)
}

// update godoc
// @Summary Update a goal
// @Description Applies a partial update; only fields present in the body change.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goalID path int true "Goal id"
// @Param goal body goals.UpdateRequest true "Fields to change"
// @Success 200 {object} goals.Goal
// @Failure 400 {object} apperror.ErrorResponse "Validation failure"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Failure 404 {object} apperror.ErrorResponse "Goal not found"
// @Router /api/goals/{goalID} [put]
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Struct(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	goal, err := h.service.Update(r.Context(), id, user.ID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, goal)
}

// delete godoc
// @Summary Delete a goal
// @Tags goals
// @Security BearerAuth
// @Param goalID path int true "Goal id"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Failure 404 {object} apperror.ErrorResponse "Goal not found"
// @Router /api/goals/{goalID} [delete]
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
