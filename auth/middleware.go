package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/user/spendshift-go/apperror"
)

// unauthenticatedMessage is the one body every authentication failure
// produces. Missing header, malformed header, bad signature, expired token,
// unresolvable subject, and unknown user are externally indistinguishable.
const unauthenticatedMessage = "could not validate credentials"

// RequireAuth returns middleware that authenticates each request from its
// Authorization header: the bearer token is verified, the subject resolved to
// a user row, and the user injected into the request context. A single
// verification attempt is made per request; every failure path converges to a
// uniform 401 with a Bearer challenge.
func RequireAuth(issuer *TokenIssuer, store UserStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthenticated(w, r, nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthenticated(w, r, nil)
				return
			}

			userID, err := issuer.Verify(parts[1])
			if err != nil {
				unauthenticated(w, r, err)
				return
			}

			user, err := store.GetUserByID(r.Context(), userID)
			if err != nil {
				unauthenticated(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}

// unauthenticated writes the uniform 401. The cause is logged server-side for
// traceability but never reaches the response.
func unauthenticated(w http.ResponseWriter, r *http.Request, cause error) {
	if cause != nil {
		log.Printf("authentication failed for %s %s: %v", r.Method, r.URL.Path, cause)
	}
	WriteError(w, r, apperror.NewAuthError(unauthenticatedMessage, cause))
}
