package repository

import (
	"context"
	"errors"
	"kzstore-backoffice/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository interface {
	// EmailByID returns the user's email, or "" when the user does not
	// exist or has no email on file.
	EmailByID(ctx context.Context, userID string) (string, error)
	CountNewCustomers(ctx context.Context, since time.Time) (int64, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{db: db}
}

func (r *userRepoImpl) EmailByID(ctx context.Context, userID string) (string, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Select("email").
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return user.Email, nil
}

func (r *userRepoImpl) CountNewCustomers(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("created_at >= ?", since).
		Where("role = ?", "customer").
		Count(&count).Error
	return count, err
}
