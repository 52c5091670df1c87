package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/repository"
)

// ErrInvalidCredentials is returned for both an unknown email and a
// wrong password. A single message for both stages keeps sign-in from
// acting as a user-existence oracle.
var ErrInvalidCredentials = errors.New("incorrect data to login")

// AuthService orchestrates credential verification and token issuance.
type AuthService struct {
	users  *repository.UserRepository
	tokens crypto.TokenOptions
}

func NewAuthService(users *repository.UserRepository, tokens crypto.TokenOptions) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Authenticate runs the two-stage credential check (account lookup,
// digest verification) and returns the matching account. Token
// issuance is layered on top by SignIn.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// Malformed stored digest. Indistinguishable from a wrong
		// password to the caller, but operators need to know.
		slog.Error("stored password digest is malformed", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SignIn verifies credentials and issues an identity token carrying
// the account ID and email.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (model.SignInResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return model.SignInResponse{}, err
	}

	token, err := crypto.IssueToken(user.ID, user.Email, s.tokens)
	if err != nil {
		return model.SignInResponse{}, fmt.Errorf("issuing token: %w", err)
	}

	return model.SignInResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}
