package mbgorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/markbase/markbase/core/identity"
	"github.com/markbase/markbase/core/logger"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u *identity.User) error {
	return r.db.WithContext(ctx).Create(fromCoreUser(u)).Error
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	var u gormUser
	err := r.db.WithContext(ctx).Where("email = ?", identity.NormalizeEmail(email)).First(&u).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Error("user lookup failed", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}
	return toCoreUser(&u), nil
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var u gormUser
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id.String()).Error; err != nil {
		return nil, err
	}
	return toCoreUser(&u), nil
}
