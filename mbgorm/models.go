package mbgorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/markbase/markbase/core/audit"
	"github.com/markbase/markbase/core/identity"
	"github.com/markbase/markbase/core/notes"
)

type gormUser struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (gormUser) TableName() string { return "users" }

func toCoreUser(u *gormUser) *identity.User {
	if u == nil {
		return nil
	}
	id, _ := uuid.Parse(u.ID)
	return &identity.User{
		ID:           id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromCoreUser(u *identity.User) *gormUser {
	if u == nil {
		return nil
	}
	return &gormUser{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// gormAuthToken holds the single live token per principal. Email is the
// primary key, so inserting with an ON CONFLICT clause replaces the previous
// token atomically.
type gormAuthToken struct {
	Email    string `gorm:"primaryKey"`
	Token    string `gorm:"index"`
	IssuedAt time.Time
}

func (gormAuthToken) TableName() string { return "auth_tokens" }

type gormFolder struct {
	ID        string `gorm:"primaryKey"`
	OwnerID   string `gorm:"index"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gormFolder) TableName() string { return "folders" }

func toCoreFolder(f *gormFolder) *notes.Folder {
	if f == nil {
		return nil
	}
	id, _ := uuid.Parse(f.ID)
	owner, _ := uuid.Parse(f.OwnerID)
	return &notes.Folder{
		ID:        id,
		OwnerID:   owner,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func fromCoreFolder(f *notes.Folder) *gormFolder {
	if f == nil {
		return nil
	}
	return &gormFolder{
		ID:        f.ID.String(),
		OwnerID:   f.OwnerID.String(),
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

type gormNote struct {
	ID        string `gorm:"primaryKey"`
	OwnerID   string `gorm:"index"`
	FolderID  string `gorm:"index"`
	Title     string
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gormNote) TableName() string { return "notes" }

func toCoreNote(n *gormNote) *notes.Note {
	if n == nil {
		return nil
	}
	id, _ := uuid.Parse(n.ID)
	owner, _ := uuid.Parse(n.OwnerID)
	folder, _ := uuid.Parse(n.FolderID)
	return &notes.Note{
		ID:        id,
		OwnerID:   owner,
		FolderID:  folder,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func fromCoreNote(n *notes.Note) *gormNote {
	if n == nil {
		return nil
	}
	return &gormNote{
		ID:        n.ID.String(),
		OwnerID:   n.OwnerID.String(),
		FolderID:  n.FolderID.String(),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type gormAuditEvent struct {
	ID        string `gorm:"primaryKey"`
	Type      string `gorm:"index"`
	ActorID   string `gorm:"index"`
	Status    string `gorm:"index"`
	Message   string
	CreatedAt time.Time `gorm:"index"`
}

func (gormAuditEvent) TableName() string { return "audit_events" }

func fromCoreAuditEvent(e *audit.Event) *gormAuditEvent {
	if e == nil {
		return nil
	}
	return &gormAuditEvent{
		ID:        e.ID,
		Type:      e.Type,
		ActorID:   e.ActorID,
		Status:    e.Status,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func toCoreAuditEvent(e *gormAuditEvent) *audit.Event {
	if e == nil {
		return nil
	}
	return &audit.Event{
		ID:        e.ID,
		Type:      e.Type,
		ActorID:   e.ActorID,
		Status:    e.Status,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}
