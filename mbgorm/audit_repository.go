package mbgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/markbase/markbase/core/audit"
)

// AuditRepository persists audit events.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) SaveEvent(ctx context.Context, e *audit.Event) error {
	return r.db.WithContext(ctx).Create(fromCoreAuditEvent(e)).Error
}

// RecentEvents returns the newest events, most recent first.
func (r *AuditRepository) RecentEvents(ctx context.Context, limit int) ([]*audit.Event, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []gormAuditEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*audit.Event, 0, len(rows))
	for i := range rows {
		out = append(out, toCoreAuditEvent(&rows[i]))
	}
	return out, nil
}
