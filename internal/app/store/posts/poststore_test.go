package poststore_test

import (
	"testing"

	poststore "github.com/dalemusser/alumnihub/internal/app/store/posts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
)

func TestStore_Create_StampsPublishedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pub, err := store.Create(ctx, models.Post{Title: "News", Content: "<p>x</p>", IsPublished: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if pub.PublishedAt == nil {
		t.Error("published post should have PublishedAt")
	}

	draft, _ := store.Create(ctx, models.Post{Title: "Draft", Content: "y"})
	if draft.PublishedAt != nil {
		t.Error("draft should not have PublishedAt")
	}

	published, _ := store.List(ctx, poststore.Filter{PublishedOnly: true})
	if len(published) != 1 || published[0].ID != pub.ID {
		t.Errorf("published list: %+v", published)
	}
}

func TestStore_Update_FirstPublishStamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	draft, _ := store.Create(ctx, models.Post{Title: "Draft", Content: "y"})
	yes := true
	got, err := store.Update(ctx, draft.ID, poststore.Update{IsPublished: &yes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.PublishedAt == nil {
		t.Fatal("expected PublishedAt after publishing")
	}

	stored, _ := store.GetByID(ctx, draft.ID)
	if stored.PublishedAt == nil || !stored.IsPublished {
		t.Errorf("stored: %+v", stored)
	}
}
