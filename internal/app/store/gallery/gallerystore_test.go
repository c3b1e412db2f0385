package gallerystore_test

import (
	"errors"
	"testing"

	gallerystore "github.com/dalemusser/alumnihub/internal/app/store/gallery"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_ListOrderAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, g := range []models.GalleryItem{
		{Title: "Third", ImageURL: "u3", Order: 3, IsActive: true, Category: "sports"},
		{Title: "First", ImageURL: "u1", Order: 1, IsActive: true, Category: "campus"},
		{Title: "Hidden", ImageURL: "u2", Order: 2, IsActive: false, Category: "campus"},
	} {
		if _, err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	active, err := store.List(ctx, true, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 2 || active[0].Title != "First" {
		t.Errorf("active: %+v", active)
	}

	campus, _ := store.List(ctx, false, "campus")
	if len(campus) != 2 {
		t.Errorf("campus: got %d, want 2", len(campus))
	}
}

func TestStore_UpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, _ := store.Create(ctx, models.GalleryItem{Title: "Pic", ImageURL: "u", IsActive: true})
	off := false
	got, err := store.Update(ctx, g.ID, gallerystore.Update{IsActive: &off})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.IsActive || got.Title != "Pic" {
		t.Errorf("after update: %+v", got)
	}

	if err := store.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, g.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
