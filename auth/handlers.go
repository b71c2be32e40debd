// HTTP handlers for the auth endpoints. Handlers decode and validate the
// request, delegate to AuthService, and write the response through the shared
// helpers at the bottom of this file, which the other feature packages also
// use.
package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/validation"
)

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User registration
// @Description Registers a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.UserResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Validation failure"
// @Failure 409 {object} apperror.ErrorResponse "Email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal error"
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, user.ToResponse())
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Exchanges form credentials for a bearer token. The username
// @Description field carries the email address, per the OAuth2 password flow.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} auth.TokenResponse "Token issued"
// @Failure 400 {object} apperror.ErrorResponse "Missing form fields"
// @Failure 401 {object} apperror.ErrorResponse "Incorrect email or password"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid form body", err))
			return
		}

		email := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			fields := map[string]string{}
			if email == "" {
				fields["username"] = "is required"
			}
			if password == "" {
				fields["password"] = "is required"
			}
			WriteError(w, r, apperror.NewFieldValidationError("validation failed", fields))
			return
		}

		resp, err := h.service.Login(r.Context(), email, password)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMe godoc
// @Summary Current user
// @Description Returns the account of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.UserResponse "Current user"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /api/auth/me [get]
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError(unauthenticatedMessage, nil))
			return
		}
		WriteJSON(w, http.StatusOK, user.ToResponse())
	}
}

// WriteJSON serializes data to JSON with the given status code. A nil payload
// writes only the status line, avoiding a literal "null" body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError maps any error onto the apperror envelope. 401 responses carry
// the bearer challenge; server-side causes are logged, never serialized.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("request %s %s failed: %v", r.Method, r.URL.Path, appErr)
	}
	if appErr.StatusCode() == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
