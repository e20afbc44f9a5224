package services

import (
	"context"

	"freelancehub/exceptions"
	"freelancehub/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, exceptions.ErrUserNotFound)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, exceptions.ErrInvalidRole
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
