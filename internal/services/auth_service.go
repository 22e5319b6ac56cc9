package services

import (
	"context"
	"errors"

	"gocarpool/internal/config"
	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error)

	// GetUserByID resolves a token subject to a live user record. Used by the
	// auth middleware on every protected request.
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type RegisterRequest struct {
	Name     string        `json:"name" validate:"required,min=2,max=50"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6,max=128"`
	Gender   models.Gender `json:"gender" validate:"required,gender"`
	Phone    string        `json:"phone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	users    interfaces.UserRepository
	security *config.SecurityConfig
	logger   *logger.Logger
}

func NewAuthService(users interfaces.UserRepository, security *config.SecurityConfig, log *logger.Logger) AuthService {
	return &authService{
		users:    users,
		security: security,
		logger:   log,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := utils.HashPassword(req.Password, s.security.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     utils.SanitizeString(req.Name),
		Email:    req.Email,
		Password: hash,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Rating:   utils.MaxRating,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, s.security.JWTSecret)
	if err != nil {
		return nil, err
	}

	s.logger.LogUserAction(user.ID, "register", map[string]interface{}{"email": user.Email})

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.ComparePassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, s.security.JWTSecret)
	if err != nil {
		return nil, err
	}

	s.logger.LogUserAction(user.ID, "login", nil)

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	userID, err := utils.ExtractUserIDFromToken(refreshToken, s.security.JWTSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// The subject must still resolve to a live account.
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return utils.GenerateTokenPair(user.ID, user.Email, s.security.JWTSecret)
}

func (s *authService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
