package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase implements registration and login
type AuthUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	logger   *zap.Logger
}

func NewUsecase(
	userRepo repository.UserRepository,
	tokens *token.Manager,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register validates the request, stores a bcrypt hash and issues a token.
// Validation failures return before any repository access.
func (uc *AuthUsecase) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	if err := validator.ValidateRegister(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := uc.userRepo.Create(ctx, entity.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "user registered", zap.String("user_id", user.ID))

	return uc.issueFor(user)
}

// Login checks credentials. An unknown email and a wrong password produce
// the same entity.ErrInvalidCredentials.
func (uc *AuthUsecase) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	if err := validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	ctxzap.Info(ctx, "user logged in", zap.String("user_id", user.ID))

	return uc.issueFor(user)
}

// GetUser loads the authenticated user's profile.
func (uc *AuthUsecase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUsecase) issueFor(user *entity.User) (*entity.AuthResponse, error) {
	signed, expiresAt, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &entity.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User: entity.UserDTO{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}
