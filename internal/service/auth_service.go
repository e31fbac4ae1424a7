package service

import (
	"errors"

	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login rotates the user's token version so that previously issued tokens
// stop validating once a new session starts.
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "email and password are required")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "invalid email or password")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to look up user", err)
	}

	if !user.IsActive {
		return nil, apperr.New(apperr.KindValidation, "account is inactive")
	}
	if !user.CheckPassword(password) {
		return nil, apperr.New(apperr.KindValidation, "invalid email or password")
	}

	user.TokenVersion = uuid.New().String()
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update session", err)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.TokenVersion)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}

	return &LoginResponse{Token: token, User: *user}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.User, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "invalid or expired token")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "user not found")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.KindValidation, "account is inactive")
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperr.New(apperr.KindValidation, "token has been revoked")
	}

	return user, nil
}
