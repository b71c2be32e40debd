package transactions

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/auth"
	"github.com/user/spendshift-go/validation"
)

// Handler exposes the transaction endpoints. All routes assume the auth
// middleware already resolved the current user into the request context.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the transaction routes on a chi sub-router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{transactionID}", h.update)
	r.Delete("/{transactionID}", h.delete)
}

// currentUser pulls the authenticated user out of the context; its absence
// means the middleware was not applied, which is a wiring bug.
func currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("could not validate credentials", nil))
		return nil, false
	}
	return user, true
}

func transactionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid transaction id", err))
		return 0, false
	}
	return id, true
}

// list godoc
// @Summary List transactions
// @Description Lists the current user's transactions, newest date first.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} transactions.Transaction
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /api/transactions [get]
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
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body transactions.CreateRequest true "Transaction fields"
// @Success 201 {object} transactions.Transaction
// @Failure 400 {object} apperror.ErrorResponse "Validation failure"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /api/transactions [post]
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

	tx, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, tx)
}

// update godoc
// @Summary Update a transaction
// @Description Applies a partial update; only fields present in the body change.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transactionID path int true "Transaction id"
// @Param transaction body transactions.UpdateRequest true "Fields to change"
// @Success 200 {object} transactions.Transaction
// @Failure 400 {object} apperror.ErrorResponse "Validation failure"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Failure 404 {object} apperror.ErrorResponse "Transaction not found"
// @Router /api/transactions/{transactionID} [put]
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := transactionID(w, r)
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

	tx, err := h.service.Update(r.Context(), id, user.ID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, tx)
}

// delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param transactionID path int true "Transaction id"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Failure 404 {object} apperror.ErrorResponse "Transaction not found"
// @Router /api/transactions/{transactionID} [delete]
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := transactionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
