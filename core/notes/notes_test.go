package notes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type memStorage struct {
	folders map[uuid.UUID]*Folder
	notes   map[uuid.UUID]*Note
}

func newMemStorage() *memStorage {
	return &memStorage{
		folders: make(map[uuid.UUID]*Folder),
		notes:   make(map[uuid.UUID]*Note),
	}
}

func (m *memStorage) CreateFolder(ctx context.Context, f *Folder) error {
	m.folders[f.ID] = f
	return nil
}

func (m *memStorage) GetFolder(ctx context.Context, owner, id uuid.UUID) (*Folder, error) {
	f, ok := m.folders[id]
	if !ok || f.OwnerID != owner {
		return nil, ErrNotFound
	}
	return f, nil
}

func (m *memStorage) ListFolders(ctx context.Context, owner uuid.UUID) ([]*Folder, error) {
	var out []*Folder
	for _, f := range m.folders {
		if f.OwnerID == owner {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStorage) UpdateFolder(ctx context.Context, f *Folder) error {
	if _, ok := m.folders[f.ID]; !ok {
		return ErrNotFound
	}
	m.folders[f.ID] = f
	return nil
}

func (m *memStorage) DeleteFolder(ctx context.Context, owner, id uuid.UUID) error {
	f, ok := m.folders[id]
	if !ok || f.OwnerID != owner {
		return ErrNotFound
	}
	delete(m.folders, id)
	for nid, n := range m.notes {
		if n.FolderID == id {
			delete(m.notes, nid)
		}
	}
	return nil
}

func (m *memStorage) CreateNote(ctx context.Context, n *Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *memStorage) GetNote(ctx context.Context, owner, id uuid.UUID) (*Note, error) {
	n, ok := m.notes[id]
	if !ok || n.OwnerID != owner {
		return nil, ErrNotFound
	}
	return n, nil
}

func (m *memStorage) ListNotes(ctx context.Context, owner uuid.UUID, folderID *uuid.UUID) ([]*Note, error) {
	var out []*Note
	for _, n := range m.notes {
		if n.OwnerID != owner {
			continue
		}
		if folderID != nil && n.FolderID != *folderID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *memStorage) UpdateNote(ctx context.Context, n *Note) error {
	if _, ok := m.notes[n.ID]; !ok {
		return ErrNotFound
	}
	m.notes[n.ID] = n
	return nil
}

func (m *memStorage) DeleteNote(ctx context.Context, owner, id uuid.UUID) error {
	n, ok := m.notes[id]
	if !ok || n.OwnerID != owner {
		return ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func TestFolderAndNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStorage())
	owner := uuid.New()

	folder, err := svc.CreateFolder(ctx, owner, "  Work  ")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	if folder.Name != "Work" {
		t.Errorf("expected trimmed folder name, got %q", folder.Name)
	}

	note, err := svc.CreateNote(ctx, owner, folder.ID, "Standup", "- [ ] notes")
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	got, err := svc.GetNote(ctx, owner, note.ID)
	if err != nil {
		t.Fatalf("failed to get note: %v", err)
	}
	if got.Content != "- [ ] notes" {
		t.Errorf("unexpected content %q", got.Content)
	}

	listed, err := svc.ListNotes(ctx, owner, &folder.ID)
	if err != nil {
		t.Fatalf("failed to list notes: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 note, got %d", len(listed))
	}
}

func TestCreateNoteRequiresOwnedFolder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStorage())
	owner := uuid.New()
	stranger := uuid.New()

	folder, err := svc.CreateFolder(ctx, owner, "Private")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}

	if _, err := svc.CreateNote(ctx, stranger, folder.ID, "Sneaky", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another owner's folder, got %v", err)
	}
	if _, err := svc.CreateNote(ctx, owner, uuid.New(), "Lost", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing folder, got %v", err)
	}
}

func TestUpdateNoteMove(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStorage())
	owner := uuid.New()

	src, err := svc.CreateFolder(ctx, owner, "Inbox")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	dst, err := svc.CreateFolder(ctx, owner, "Archive")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	note, err := svc.CreateNote(ctx, owner, src.ID, "Old", "body")
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	moved, err := svc.UpdateNote(ctx, owner, note.ID, "", "new body", &dst.ID)
	if err != nil {
		t.Fatalf("failed to move note: %v", err)
	}
	if moved.FolderID != dst.ID {
		t.Error("expected note to be in destination folder")
	}
	if moved.Title != "Old" {
		t.Errorf("expected blank title to keep the old one, got %q", moved.Title)
	}
	if moved.Content != "new body" {
		t.Errorf("expected content update, got %q", moved.Content)
	}

	// Moving into a folder the owner does not hold fails.
	other := uuid.New()
	foreign, err := svc.CreateFolder(ctx, other, "Theirs")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	if _, err := svc.UpdateNote(ctx, owner, note.ID, "", "x", &foreign.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound moving into foreign folder, got %v", err)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStorage())
	owner := uuid.New()

	folder, err := svc.CreateFolder(ctx, owner, "Doomed")
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	note, err := svc.CreateNote(ctx, owner, folder.ID, "Inside", "")
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	if err := svc.DeleteFolder(ctx, owner, folder.ID); err != nil {
		t.Fatalf("failed to delete folder: %v", err)
	}
	if _, err := svc.GetNote(ctx, owner, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected cascaded note deletion, got %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Title\n\nSome **bold** text.\n\n- [x] done\n")
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	for _, want := range []string{"<h1>", "<strong>bold</strong>", "checkbox"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected rendered HTML to contain %q, got:\n%s", want, html)
		}
	}
}
