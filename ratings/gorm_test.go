package ratings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

func openTestDB(t *testing.T) *Gorm {
	t.Helper()
	g, err := OpenSQLite(filepath.Join(t.TempDir(), "ratings.db"))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGormUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := openTestDB(t)

	if err := g.Upsert(ctx, 1, 10, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := g.Upsert(ctx, 1, 20, 3.0); err != nil {
		t.Fatal(err)
	}
	// ON CONFLICT 更新而不是新增
	if err := g.Upsert(ctx, 1, 10, 2.5); err != nil {
		t.Fatal(err)
	}

	all, err := g.AllRatings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.Rating{
		{UserID: 1, ItemID: 10, Value: 2.5},
		{UserID: 1, ItemID: 20, Value: 3.0},
	}
	if len(all) != len(want) {
		t.Fatalf("got %d ratings, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("all[%d] = %+v, want %+v", i, all[i], want[i])
		}
	}

	profile, err := g.RatingsFor(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if profile[10] != 2.5 || profile[20] != 3.0 {
		t.Errorf("profile = %v", profile)
	}
}

func TestGormDeleteAll(t *testing.T) {
	ctx := context.Background()
	g := openTestDB(t)

	if err := g.Upsert(ctx, 1, 10, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := g.Upsert(ctx, 2, 10, 5.0); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteAll(ctx, 1); err != nil {
		t.Fatal(err)
	}

	all, err := g.AllRatings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].UserID != 2 {
		t.Fatalf("all = %v, want only user 2", all)
	}
}

func TestGormValidation(t *testing.T) {
	ctx := context.Background()
	g := openTestDB(t)

	if err := g.Upsert(ctx, 1, 10, 0.0); !core.IsInvalidInput(err) {
		t.Fatalf("err = %v, want INVALID_INPUT domain error", err)
	}
}
