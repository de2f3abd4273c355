package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
)

func TestClipRepo_CreateAndGet(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()

	c := model.Clip{UserID: 1, Title: "t", Content: "hello", ShortURL: "abc12345"}
	if err := repo.CreateClip(ctx, &c); err != nil {
		t.Fatalf("create %v", err)
	}

	got, err := repo.GetClipByID(ctx, c.ID)
	if err != nil || got.Content != "hello" {
		t.Fatalf("get by id %v", err)
	}
	got2, err := repo.GetClipByShortURL(ctx, "abc12345", time.Now())
	if err != nil || got2.ID != c.ID {
		t.Fatalf("get by short url %v", err)
	}

	dup := model.Clip{UserID: 2, Content: "x", ShortURL: "abc12345"}
	if err := repo.CreateClip(ctx, &dup); !errors.IsAlreadyExists(err) {
		t.Fatalf("expected already exists on slug collision, got %v", err)
	}
}

func TestClipRepo_ShortURLExpiry(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()
	exp := now.Add(time.Hour)

	c := model.Clip{UserID: 1, Content: "x", ShortURL: "exp12345", ExpiresAt: &exp}
	if err := repo.CreateClip(ctx, &c); err != nil {
		t.Fatalf("create %v", err)
	}

	if _, err := repo.GetClipByShortURL(ctx, "exp12345", now); err != nil {
		t.Fatalf("unexpired clip must resolve: %v", err)
	}
	if _, err := repo.GetClipByShortURL(ctx, "exp12345", now.Add(2*time.Hour)); !errors.IsNotFound(err) {
		t.Fatalf("expired clip must be missing, got %v", err)
	}
}

func TestClipRepo_ListByUser(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		c := model.Clip{UserID: 1, Content: "x", ShortURL: "slug0000" + string(rune('a'+i))}
		if err := repo.CreateClip(ctx, &c); err != nil {
			t.Fatalf("create %v", err)
		}
	}
	other := model.Clip{UserID: 2, Content: "y", ShortURL: "otherxyz"}
	if err := repo.CreateClip(ctx, &other); err != nil {
		t.Fatalf("create %v", err)
	}

	clips, total, err := repo.ListClipsByUser(ctx, 1, 1, 3)
	if err != nil {
		t.Fatalf("list %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5, got %d", total)
	}
	if len(clips) != 3 {
		t.Fatalf("page size want 3, got %d", len(clips))
	}

	clips2, _, err := repo.ListClipsByUser(ctx, 1, 2, 3)
	if err != nil || len(clips2) != 2 {
		t.Fatalf("second page want 2, got %d (%v)", len(clips2), err)
	}
}

func TestClipRepo_UpdateOwnerScoped(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()

	c := model.Clip{UserID: 1, Title: "old", Content: "old", ShortURL: "upd12345"}
	if err := repo.CreateClip(ctx, &c); err != nil {
		t.Fatalf("create %v", err)
	}

	title := "new"
	got, err := repo.UpdateClip(ctx, c.ID, 1, &title, nil)
	if err != nil {
		t.Fatalf("update %v", err)
	}
	if got.Title != "new" || got.Content != "old" {
		t.Fatalf("partial update wrong: %+v", got)
	}

	// someone else's clip reads as missing
	if _, err := repo.UpdateClip(ctx, c.ID, 2, &title, nil); !errors.IsNotFound(err) {
		t.Fatalf("expected not found for wrong owner, got %v", err)
	}
}

func TestClipRepo_DeleteOwnerScoped(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()

	c := model.Clip{UserID: 1, Content: "x", ShortURL: "del12345"}
	if err := repo.CreateClip(ctx, &c); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.DeleteClip(ctx, c.ID, 2); !errors.IsNotFound(err) {
		t.Fatalf("expected not found for wrong owner, got %v", err)
	}
	if err := repo.DeleteClip(ctx, c.ID, 1); err != nil {
		t.Fatalf("delete %v", err)
	}
	if _, err := repo.GetClipByID(ctx, c.ID); !errors.IsNotFound(err) {
		t.Fatal("deleted clip must be missing")
	}
}

func TestClipRepo_IncrementViews(t *testing.T) {
	repo := NewPostgresClipRepo(setupDB(t))
	ctx := context.Background()

	c := model.Clip{UserID: 1, Content: "x", ShortURL: "view1234"}
	if err := repo.CreateClip(ctx, &c); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.IncrementViews(ctx, c.ID); err != nil {
		t.Fatalf("increment %v", err)
	}
	if err := repo.IncrementViews(ctx, c.ID); err != nil {
		t.Fatalf("increment %v", err)
	}

	got, err := repo.GetClipByID(ctx, c.ID)
	if err != nil || got.ViewCount != 2 {
		t.Fatalf("view count want 2, got %d (%v)", got.ViewCount, err)
	}
}
