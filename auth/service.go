package auth

import (
	"context"
	"strings"

	"github.com/user/spendshift-go/apperror"
)

// invalidCredentialsMessage is the one phrasing used for every login failure.
// Whether the email was unknown or the password wrong is never revealed.
const invalidCredentialsMessage = "incorrect email or password"

// AuthService implements registration and login on top of a UserStore and a
// TokenIssuer.
type AuthService struct {
	store  UserStore
	issuer *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, issuer *TokenIssuer) *AuthService {
	return &AuthService{store: store, issuer: issuer}
}

// Register creates a new user. The email is stored lowercased so lookups are
// case-insensitive; a duplicate surfaces as a ConflictError from the store.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Email:          strings.ToLower(req.Email),
		FullName:       req.FullName,
		HashedPassword: hashed,
	}
	return s.store.CreateUser(ctx, user)
}

// Login verifies the credentials and mints a bearer token. Unknown email and
// wrong password produce the identical AuthError.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError(invalidCredentialsMessage, nil)
		}
		return nil, err
	}

	if !VerifyPassword(password, user.HashedPassword) {
		return nil, apperror.NewAuthError(invalidCredentialsMessage, nil)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
