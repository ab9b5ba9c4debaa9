package auth

import (
	"context"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}
