// Package mbgorm is the GORM persistence adapter. Each aggregate gets its
// own repository over a shared *gorm.DB; adapter model structs are converted
// to and from the core types at this boundary.
package mbgorm

import (
	"context"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/markbase/markbase/core/domain"
)

var _ domain.Storage = (*Repository)(nil)

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// Repository bundles every aggregate repository over one database handle.
// It satisfies domain.Storage.
type Repository struct {
	db *gorm.DB
	*UserRepository
	*TokenRepository
	*NoteRepository
	*AuditRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		UserRepository:  NewUserRepository(db),
		TokenRepository: NewTokenRepository(db),
		NoteRepository:  NewNoteRepository(db),
		AuditRepository: NewAuditRepository(db),
	}
}

// NewStorage opens the database by registered type and migrates the schema.
func NewStorage(dbType, dsn string, autoMigrate bool) (*Repository, error) {
	db, err := Open(dbType, dsn, nil)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(db)
	if autoMigrate {
		if err := repo.AutoMigrate(); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&gormUser{},
		&gormAuthToken{},
		&gormFolder{},
		&gormNote{},
		&gormAuditEvent{},
	)
}

// Ping checks connectivity for health probes.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
