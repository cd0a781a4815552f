package mbgorm

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/markbase/markbase/core/logger"
	"github.com/markbase/markbase/core/token"
)

var _ token.Store = (*TokenRepository)(nil)

// TokenRepository implements token.Store on the auth_tokens table. Email is
// the table's primary key, so Put is a single conditional write with no
// observable gap where a principal has zero or two live tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Put(ctx context.Context, email, token string) error {
	record := &gormAuthToken{Email: email, Token: token, IssuedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

func (r *TokenRepository) Exists(ctx context.Context, token, email string) bool {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormAuthToken{}).
		Where("email = ? AND token = ?", email, token).
		Count(&count).Error
	if err != nil {
		// Availability over strictness: a storage failure reads as revoked.
		logger.Log.Error("token store lookup failed", zap.String("email", email), zap.Error(err))
		return false
	}
	return count > 0
}

func (r *TokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&gormAuthToken{})
	if result.Error != nil {
		logger.Log.Error("token store delete failed", zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
