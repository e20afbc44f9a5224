package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"freelancehub/exceptions"
	"freelancehub/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a buyer or solver account. An empty role registers a solver.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" {
		return nil, exceptions.BadRequest("Username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, exceptions.BadRequest("A valid email is required")
	}
	if len(in.Password) < models.MinPasswordLength {
		return nil, exceptions.BadRequest("Password must be at least 6 characters")
	}

	role := in.Role
	if role == "" {
		role = models.RoleSolver
	}
	if role != models.RoleBuyer && role != models.RoleSolver {
		return nil, exceptions.ErrInvalidRole
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, exceptions.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, exceptions.ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Login checks the credentials. Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, exceptions.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, exceptions.ErrInvalidCredentials
	}

	return &user, nil
}
