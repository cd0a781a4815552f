// Package notes implements the folder/note model: markdown documents
// organized into per-user folders.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a folder or note does not exist for the
// requesting owner. Cross-owner access is indistinguishable from a miss.
var ErrNotFound = errors.New("not found")

// Folder groups notes for one owner.
type Folder struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a markdown document inside a folder.
type Note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	FolderID  uuid.UUID `json:"folder_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage persists folders and notes. Every lookup is owner-scoped; a miss
// (including another owner's record) is ErrNotFound.
type Storage interface {
	CreateFolder(ctx context.Context, f *Folder) error
	GetFolder(ctx context.Context, owner, id uuid.UUID) (*Folder, error)
	ListFolders(ctx context.Context, owner uuid.UUID) ([]*Folder, error)
	UpdateFolder(ctx context.Context, f *Folder) error
	// DeleteFolder removes the folder and every note in it.
	DeleteFolder(ctx context.Context, owner, id uuid.UUID) error

	CreateNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, owner, id uuid.UUID) (*Note, error)
	// ListNotes returns the owner's notes, optionally restricted to one folder.
	ListNotes(ctx context.Context, owner uuid.UUID, folderID *uuid.UUID) ([]*Note, error)
	UpdateNote(ctx context.Context, n *Note) error
	DeleteNote(ctx context.Context, owner, id uuid.UUID) error
}

// Service wraps Storage with validation and ownership checks.
type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) CreateFolder(ctx context.Context, owner uuid.UUID, name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("notes: folder name is required")
	}

	f := &Folder{ID: uuid.New(), OwnerID: owner, Name: name}
	if err := s.store.CreateFolder(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ListFolders(ctx context.Context, owner uuid.UUID) ([]*Folder, error) {
	return s.store.ListFolders(ctx, owner)
}

func (s *Service) RenameFolder(ctx context.Context, owner, id uuid.UUID, name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("notes: folder name is required")
	}

	f, err := s.store.GetFolder(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	f.Name = name
	if err := s.store.UpdateFolder(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) DeleteFolder(ctx context.Context, owner, id uuid.UUID) error {
	return s.store.DeleteFolder(ctx, owner, id)
}

func (s *Service) CreateNote(ctx context.Context, owner, folderID uuid.UUID, title, content string) (*Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("notes: note title is required")
	}

	// The target folder must exist and belong to the owner.
	if _, err := s.store.GetFolder(ctx, owner, folderID); err != nil {
		return nil, err
	}

	n := &Note{ID: uuid.New(), OwnerID: owner, FolderID: folderID, Title: title, Content: content}
	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) GetNote(ctx context.Context, owner, id uuid.UUID) (*Note, error) {
	return s.store.GetNote(ctx, owner, id)
}

func (s *Service) ListNotes(ctx context.Context, owner uuid.UUID, folderID *uuid.UUID) ([]*Note, error) {
	return s.store.ListNotes(ctx, owner, folderID)
}

// UpdateNote changes title and content, and moves the note when folderID is
// non-nil.
func (s *Service) UpdateNote(ctx context.Context, owner, id uuid.UUID, title, content string, folderID *uuid.UUID) (*Note, error) {
	n, err := s.store.GetNote(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		n.Title = title
	}
	n.Content = content

	if folderID != nil && *folderID != n.FolderID {
		if _, err := s.store.GetFolder(ctx, owner, *folderID); err != nil {
			return nil, err
		}
		n.FolderID = *folderID
	}

	if err := s.store.UpdateNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, owner, id uuid.UUID) error {
	return s.store.DeleteNote(ctx, owner, id)
}
