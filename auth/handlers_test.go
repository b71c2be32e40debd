package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/user/spendshift-go/config"
)

// newTestAPI wires the auth routes the way main.go does, backed by the
// in-memory store.
func newTestAPI(ttl time.Duration) (http.Handler, *memUserStore, *TokenIssuer) {
	store := newMemUserStore()
	issuer := NewTokenIssuer(&config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenDuration: ttl,
	})
	handlers := NewHandlers(NewAuthService(store, issuer))

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.HandleRegister())
		r.Post("/login", handlers.HandleLogin())
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(issuer, store))
			r.Get("/me", handlers.HandleMe())
		})
	})
	return r, store, issuer
}

func registerUser(t *testing.T, handler http.Handler, email, password string) {
	t.Helper()
	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"` + email + `","password":"` + password + `"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()
}

func loginToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	result := apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		FormData("username", "user@example.com").
		FormData("password", "secret1").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.token_type`, "bearer")).
		Assert(jsonpath.Present(`$.access_token`)).
		End()

	var body struct {
		AccessToken string `json:"access_token"`
	}
	result.JSON(&body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRegister_CreatesUser(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"User@Example.com","password":"secret1","full_name":"Jane Doe"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.email`, "user@example.com")).
		Assert(jsonpath.Equal(`$.full_name`, "Jane Doe")).
		Assert(jsonpath.NotPresent(`$.password`)).
		End()
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)
	registerUser(t, handler, "user@example.com", "secret1")

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"user@example.com","password":"different"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal(`$.error`, "email already registered")).
		End()
}

func TestRegister_ValidationDetail(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"email":"not-an-email","password":"short"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Present(`$.details.email`)).
		Assert(jsonpath.Present(`$.details.password`)).
		End()
}

func TestLoginAndMe_EndToEnd(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)
	registerUser(t, handler, "user@example.com", "secret1")

	token := loginToken(t, handler)

	apitest.New().
		Handler(handler).
		Get("/api/auth/me").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.email`, "user@example.com")).
		End()
}

func TestLogin_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)
	registerUser(t, handler, "user@example.com", "secret1")

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		FormData("username", "user@example.com").
		FormData("password", "secret2").
		Expect(t).
		Status(http.StatusUnauthorized).
		Header("WWW-Authenticate", "Bearer").
		Assert(jsonpath.Equal(`$.error`, "incorrect email or password")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		FormData("username", "nobody@example.com").
		FormData("password", "secret1").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "incorrect email or password")).
		End()
}

func TestMe_UnauthenticatedPathsAreUniform(t *testing.T) {
	handler, store, issuer := newTestAPI(time.Hour)
	registerUser(t, handler, "user@example.com", "secret1")

	// No header.
	apitest.New().Handler(handler).
		Get("/api/auth/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		Header("WWW-Authenticate", "Bearer").
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()

	// Malformed header.
	apitest.New().Handler(handler).
		Get("/api/auth/me").
		Header("Authorization", "Token abc").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()

	// Expired token.
	expired, err := issuer.IssueWithTTL(1, -time.Minute)
	require.NoError(t, err)
	apitest.New().Handler(handler).
		Get("/api/auth/me").
		Header("Authorization", "Bearer "+expired).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()

	// Valid token whose user no longer exists.
	token := loginToken(t, handler)
	store.delete(1)
	apitest.New().Handler(handler).
		Get("/api/auth/me").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()
}

func TestLogin_MissingFormFields(t *testing.T) {
	handler, _, _ := newTestAPI(time.Hour)

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		FormData("username", "user@example.com").
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Present(`$.details.password`)).
		End()
}
