package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/repository"
)

// Fixed operation-failure errors. Persistence causes are logged for
// operators and never propagated to the caller.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCreateUserFailed = errors.New("create operation failed")
	ErrUpdateUserFailed = errors.New("update operation failed")
	ErrDeleteUserFailed = errors.New("delete operation failed")
)

// UserService performs account CRUD against the persistence layer.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create registers a new account. The password is hashed before
// storage and never returned.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password failed", "error", err)
		return model.UserResponse{}, ErrCreateUserFailed
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		slog.Error("creating user failed", "email", req.Email, "error", err)
		return model.UserResponse{}, ErrCreateUserFailed
	}

	return model.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// Get returns an account with its items embedded.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.repo.GetByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, fmt.Errorf("fetching user %d: %w", id, err)
	}

	return model.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Items: user.Items,
	}, nil
}

// Update applies a partial update; absent fields retain their prior
// value. A new password is hashed before storage.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		slog.Error("fetching user for update failed", "id", id, "error", err)
		return model.UserResponse{}, ErrUpdateUserFailed
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			slog.Error("hashing password failed", "id", id, "error", err)
			return model.UserResponse{}, ErrUpdateUserFailed
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		slog.Error("updating user failed", "id", id, "error", err)
		return model.UserResponse{}, ErrUpdateUserFailed
	}

	return model.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// Delete removes an account. Existence is re-checked by the delete
// itself: zero rows affected surfaces as not found.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		slog.Error("deleting user failed", "id", id, "error", err)
		return ErrDeleteUserFailed
	}
	return nil
}
