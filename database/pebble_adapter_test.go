package database

import (
	"errors"
	"testing"

	model "agentgrind-service/models"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	db, err := NewPebbleDatabase(&PebbleConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetBountyMetadata(t *testing.T) {
	db := newTestDB(t)

	meta := &model.BountyMetadata{
		Creator:     "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
		BountyID:    "fix-parser-0042",
		Title:       "Fix the config parser",
		Description: "Parser drops quoted values containing colons.",
		CreatedAt:   1_756_000_000,
	}
	if err := db.SaveBountyMetadata(meta); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetBountyMetadata(meta.Creator, meta.BountyID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != meta.Title || got.Description != meta.Description {
		t.Fatalf("got %+v", got)
	}

	// Save is an upsert.
	meta.Title = "Fix the config parser (urgent)"
	if err := db.SaveBountyMetadata(meta); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, err = db.GetBountyMetadata(meta.Creator, meta.BountyID)
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Title != "Fix the config parser (urgent)" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestGetBountyMetadataNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetBountyMetadata("creator", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListBountyMetadataByCreator(t *testing.T) {
	db := newTestDB(t)

	for i, id := range []string{"b-1", "b-2", "b-3"} {
		err := db.SaveBountyMetadata(&model.BountyMetadata{
			Creator:   "creatorA",
			BountyID:  id,
			Title:     "t-" + id,
			CreatedAt: int64(1000 + i),
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := db.SaveBountyMetadata(&model.BountyMetadata{Creator: "creatorB", BountyID: "x", CreatedAt: 1}); err != nil {
		t.Fatalf("save other creator: %v", err)
	}

	got, err := db.ListBountyMetadataByCreator("creatorA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].BountyID != "b-3" || got[2].BountyID != "b-1" {
		t.Fatalf("order: %s, %s, %s", got[0].BountyID, got[1].BountyID, got[2].BountyID)
	}
}

func TestDeleteBountyMetadata(t *testing.T) {
	db := newTestDB(t)

	meta := &model.BountyMetadata{Creator: "c", BountyID: "b"}
	if err := db.SaveBountyMetadata(meta); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.DeleteBountyMetadata("c", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetBountyMetadata("c", "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
