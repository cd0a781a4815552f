package mbgorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markbase/markbase/core/notes"
)

// NoteRepository implements notes.Storage for folders and notes.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notes.ErrNotFound
	}
	return err
}

func (r *NoteRepository) CreateFolder(ctx context.Context, f *notes.Folder) error {
	return r.db.WithContext(ctx).Create(fromCoreFolder(f)).Error
}

func (r *NoteRepository) GetFolder(ctx context.Context, owner, id uuid.UUID) (*notes.Folder, error) {
	var f gormFolder
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.String(), owner.String()).
		First(&f).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return toCoreFolder(&f), nil
}

func (r *NoteRepository) ListFolders(ctx context.Context, owner uuid.UUID) ([]*notes.Folder, error) {
	var rows []gormFolder
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", owner.String()).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*notes.Folder, 0, len(rows))
	for i := range rows {
		out = append(out, toCoreFolder(&rows[i]))
	}
	return out, nil
}

func (r *NoteRepository) UpdateFolder(ctx context.Context, f *notes.Folder) error {
	result := r.db.WithContext(ctx).
		Model(&gormFolder{}).
		Where("id = ? AND owner_id = ?", f.ID.String(), f.OwnerID.String()).
		Update("name", f.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notes.ErrNotFound
	}
	return nil
}

// DeleteFolder removes the folder and all notes inside it in one
// transaction.
func (r *NoteRepository) DeleteFolder(ctx context.Context, owner, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", id.String(), owner.String()).
			Delete(&gormFolder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notes.ErrNotFound
		}
		return tx.Where("folder_id = ? AND owner_id = ?", id.String(), owner.String()).
			Delete(&gormNote{}).Error
	})
}

func (r *NoteRepository) CreateNote(ctx context.Context, n *notes.Note) error {
	return r.db.WithContext(ctx).Create(fromCoreNote(n)).Error
}

func (r *NoteRepository) GetNote(ctx context.Context, owner, id uuid.UUID) (*notes.Note, error) {
	var n gormNote
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.String(), owner.String()).
		First(&n).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return toCoreNote(&n), nil
}

func (r *NoteRepository) ListNotes(ctx context.Context, owner uuid.UUID, folderID *uuid.UUID) ([]*notes.Note, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", owner.String())
	if folderID != nil {
		query = query.Where("folder_id = ?", folderID.String())
	}

	var rows []gormNote
	if err := query.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*notes.Note, 0, len(rows))
	for i := range rows {
		out = append(out, toCoreNote(&rows[i]))
	}
	return out, nil
}

func (r *NoteRepository) UpdateNote(ctx context.Context, n *notes.Note) error {
	result := r.db.WithContext(ctx).
		Model(&gormNote{}).
		Where("id = ? AND owner_id = ?", n.ID.String(), n.OwnerID.String()).
		Updates(map[string]interface{}{
			"title":     n.Title,
			"content":   n.Content,
			"folder_id": n.FolderID.String(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notes.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, owner, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.String(), owner.String()).
		Delete(&gormNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notes.ErrNotFound
	}
	return nil
}
