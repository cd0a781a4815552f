package mbgorm

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewStorage("sqlite", filepath.Join(t.TempDir(), "markbase_test.db"), true)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return repo
}

func TestTokenPutReplacesPreviousToken(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "alice@example.com", "t1"); err != nil {
		t.Fatalf("failed to put first token: %v", err)
	}
	if !repo.Exists(ctx, "t1", "alice@example.com") {
		t.Fatal("expected t1 to be live")
	}

	if err := repo.Put(ctx, "alice@example.com", "t2"); err != nil {
		t.Fatalf("failed to put second token: %v", err)
	}
	if repo.Exists(ctx, "t1", "alice@example.com") {
		t.Error("expected t1 to be superseded")
	}
	if !repo.Exists(ctx, "t2", "alice@example.com") {
		t.Error("expected t2 to be live")
	}

	// Exactly one row per principal.
	var count int64
	if err := repo.DB().Model(&gormAuthToken{}).Where("email = ?", "alice@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one live row, got %d", count)
	}
}

func TestTokenPutIsPerPrincipal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "alice@example.com", "ta"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := repo.Put(ctx, "bob@example.com", "tb"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if !repo.Exists(ctx, "ta", "alice@example.com") || !repo.Exists(ctx, "tb", "bob@example.com") {
		t.Error("expected both principals to keep their own live token")
	}
	if repo.Exists(ctx, "tb", "alice@example.com") {
		t.Error("expected token/email pairing to be checked")
	}
}

func TestTokenDeleteByTokenIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "alice@example.com", "t1"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	deleted, err := repo.DeleteByToken(ctx, "t1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected first delete to report true")
	}

	deleted, err = repo.DeleteByToken(ctx, "t1")
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}

	if repo.Exists(ctx, "t1", "alice@example.com") {
		t.Error("expected token to be gone")
	}
}
