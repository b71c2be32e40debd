package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/spendshift-go/config"
)

// ErrInvalidToken is the single failure the verifier exposes. Malformed,
// wrongly signed, and expired tokens are indistinguishable to callers; the
// underlying cause stays wrapped for server-side logs only.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer creates and verifies the signed bearer tokens the API hands out
// at login. Tokens are stateless: a claim set {sub, exp} signed with HS256
// over a shared secret, verified purely by signature and expiry at
// presentation time. There is no server-side revocation.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer from the auth configuration.
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.AccessTokenDuration,
	}
}

// Issue mints a token for the given user with the configured lifetime.
func (ti *TokenIssuer) Issue(userID int64) (string, error) {
	return ti.IssueWithTTL(userID, ti.ttl)
}

// IssueWithTTL mints a token with an explicit lifetime. The subject claim is
// the user id serialized to its decimal string form: JWT subjects are
// strings, and strict verifiers reject numeric ones.
func (ti *TokenIssuer) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns the user id parsed
// back from the subject claim. Every failure mode collapses to ErrInvalidToken.
func (ti *TokenIssuer) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ti.secret, nil
		},
		// A token without an expiry claim never stops being valid; reject it.
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: unresolvable subject claim", ErrInvalidToken)
	}
	return userID, nil
}
