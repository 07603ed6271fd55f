// Package services holds the application's business logic. Services accept
// a context, validate input, call repositories with a bounded timeout, and
// translate persistence errors into the sentinel taxonomy.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/auth"
)

// queryTimeout bounds every outbound persistence call so a stuck database
// cannot pin request goroutines indefinitely.
const queryTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// notFound maps gorm's record-not-found onto the service taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AuthService implements registration, login, and account recovery.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the payload for AuthService.Register.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required"`
	Address  string `json:"address"  validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// Register creates a new account with role 0. The email must be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.users.FindByEmail(ctx, strings.ToLower(in.Email)); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     in.Name,
		Email:    strings.ToLower(in.Email),
		Password: hashed,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   in.Answer,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and issues a signed token on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredential
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredential
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// ResetPassword sets a new password when email and recovery answer match.
func (s *AuthService) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}

	if user.Answer != answer {
		return ErrInvalidCredential
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.users.Update(ctx, &user)
}

// ProfileInput is the partial payload for UpdateProfile. Empty fields are
// left unchanged.
type ProfileInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateProfile applies a partial profile update. A new password must be at
// least 6 characters.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, notFound(err)
	}

	if in.Password != "" {
		if len(in.Password) < 6 {
			return models.User{}, NewValidationError(map[string]string{
				"password": "Password must be at least 6 characters.",
			})
		}
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, err
		}
		user.Password = hashed
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
