package slidestore_test

import (
	"testing"

	slidestore "github.com/dalemusser/alumnihub/internal/app/store/slides"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
)

func TestStore_List_ActiveInOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := slidestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _ = store.Create(ctx, models.Slide{Title: "B", ImageURL: "b", Order: 2, IsActive: true})
	_, _ = store.Create(ctx, models.Slide{Title: "A", ImageURL: "a", Order: 1, IsActive: true})
	_, _ = store.Create(ctx, models.Slide{Title: "Off", ImageURL: "c", Order: 0, IsActive: false})

	slides, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(slides) != 2 || slides[0].Title != "A" || slides[1].Title != "B" {
		t.Errorf("slides: %+v", slides)
	}

	all, _ := store.List(ctx, false)
	if len(all) != 3 || all[0].Title != "Off" {
		t.Errorf("all: %+v", all)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := slidestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sl, _ := store.Create(ctx, models.Slide{Title: "A", ImageURL: "a", IsActive: true})
	order := 5
	link := "https://example.com/reunion"
	got, err := store.Update(ctx, sl.ID, slidestore.Update{Order: &order, LinkURL: &link})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Order != 5 || got.LinkURL != link || got.Title != "A" {
		t.Errorf("after: %+v", got)
	}
}
