package ratings

import (
	"context"
	"testing"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/store"
)

func newAdapter(t *testing.T) *StoreAdapter {
	t.Helper()
	ms := store.NewMemoryStore()
	t.Cleanup(func() { ms.Close() })
	return NewStoreAdapter(ms, "")
}

func TestStoreAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	if err := a.Upsert(ctx, 1, 10, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := a.Upsert(ctx, 1, 20, 3.0); err != nil {
		t.Fatal(err)
	}
	if err := a.Upsert(ctx, 2, 10, 5.0); err != nil {
		t.Fatal(err)
	}
	// 覆盖写
	if err := a.Upsert(ctx, 1, 10, 2.0); err != nil {
		t.Fatal(err)
	}

	profile, err := a.RatingsFor(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(profile) != 2 || profile[10] != 2.0 || profile[20] != 3.0 {
		t.Fatalf("profile = %v", profile)
	}

	all, err := a.AllRatings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.Rating{
		{UserID: 1, ItemID: 10, Value: 2.0},
		{UserID: 1, ItemID: 20, Value: 3.0},
		{UserID: 2, ItemID: 10, Value: 5.0},
	}
	if len(all) != len(want) {
		t.Fatalf("got %d ratings, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("all[%d] = %+v, want %+v", i, all[i], want[i])
		}
	}
}

func TestStoreAdapterUnknownUser(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	profile, err := a.RatingsFor(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(profile) != 0 {
		t.Fatalf("profile = %v, want empty", profile)
	}
}

func TestStoreAdapterDeleteAll(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	if err := a.Upsert(ctx, 1, 10, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := a.Upsert(ctx, 2, 10, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := a.DeleteAll(ctx, 1); err != nil {
		t.Fatal(err)
	}

	all, err := a.AllRatings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].UserID != 2 {
		t.Fatalf("all = %v, want only user 2", all)
	}
}

func TestStoreAdapterValidation(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	if err := a.Upsert(ctx, 1, 10, 9.0); !core.IsInvalidInput(err) {
		t.Fatalf("err = %v, want INVALID_INPUT domain error", err)
	}
}
