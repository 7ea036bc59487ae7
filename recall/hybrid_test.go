package recall

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/ratings"
)

type failingRatings struct{}

func (failingRatings) Name() string { return "failing" }
func (failingRatings) AllRatings(context.Context) ([]core.Rating, error) {
	return nil, errors.New("store down")
}
func (failingRatings) RatingsFor(context.Context, int64) (map[int64]float64, error) {
	return nil, errors.New("store down")
}
func (failingRatings) Upsert(context.Context, int64, int64, float64) error {
	return errors.New("store down")
}
func (failingRatings) DeleteAll(context.Context, int64) error { return errors.New("store down") }

func TestHybridRecall(t *testing.T) {
	cat := testCatalog(t)
	rs := ratings.NewMemory()
	rs.Seed([]core.Rating{
		{UserID: 1, ItemID: 1, Value: 5.0},
		{UserID: 2, ItemID: 1, Value: 4.0},
		{UserID: 2, ItemID: 2, Value: 5.0},
	})

	node := &HybridRecall{Catalog: cat, Ratings: rs}
	rctx := &core.RecommendContext{
		UserID:  1,
		TopN:    4,
		Profile: map[int64]float64{1: 5.0},
	}

	items, err := node.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != cat.Len() {
		t.Fatalf("candidates = %d, want %d (full catalog)", len(items), cat.Len())
	}

	for j, it := range items {
		if it.ID != cat.At(j).ID {
			t.Errorf("candidate %d out of catalog order: id=%d", j, it.ID)
		}
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("score out of range: %v", it.Score)
		}
		if _, ok := it.Labels["score_content"]; !ok {
			t.Errorf("item %d missing score_content label", it.ID)
		}
		if _, ok := it.Labels["score_collab"]; !ok {
			t.Errorf("item %d missing score_collab label", it.ID)
		}
	}

	// 等权混合：item2 内容分和协同分都最高，混合分也应最高
	var best *core.Item
	for _, it := range items {
		if best == nil || it.Score > best.Score {
			best = it
		}
	}
	if best.ID != 2 {
		t.Errorf("best candidate id = %d, want 2", best.ID)
	}
}

func TestHybridRecallBlend(t *testing.T) {
	cat := testCatalog(t)
	rs := ratings.NewMemory()
	rs.Seed([]core.Rating{
		{UserID: 1, ItemID: 1, Value: 5.0},
	})

	node := &HybridRecall{Catalog: cat, Ratings: rs}
	rctx := &core.RecommendContext{UserID: 1, Profile: map[int64]float64{1: 5.0}}

	items, err := node.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	// 没有邻居时协同分全零，混合分恰为内容分的一半
	content := (&ContentScorer{Catalog: cat}).Scores(rctx.Profile)
	for j, it := range items {
		if math.Abs(it.Score-0.5*content[j]) > 1e-9 {
			t.Errorf("item %d score = %v, want %v", it.ID, it.Score, 0.5*content[j])
		}
	}
}

func TestHybridRecallStoreFailure(t *testing.T) {
	node := &HybridRecall{Catalog: testCatalog(t), Ratings: failingRatings{}}
	rctx := &core.RecommendContext{UserID: 1, Profile: map[int64]float64{1: 5.0}}

	if _, err := node.Process(context.Background(), rctx, nil); err == nil {
		t.Fatal("want error when rating store is unavailable, got nil")
	}
}

func TestHybridRecallDoesNotMutateCatalog(t *testing.T) {
	cat := testCatalog(t)
	rs := ratings.NewMemory()
	rs.Seed([]core.Rating{{UserID: 1, ItemID: 1, Value: 5.0}})

	node := &HybridRecall{Catalog: cat, Ratings: rs}
	rctx := &core.RecommendContext{UserID: 1, Profile: map[int64]float64{1: 5.0}}

	if _, err := node.Process(context.Background(), rctx, nil); err != nil {
		t.Fatal(err)
	}
	for _, it := range cat.Items() {
		if it.Score != 0 || len(it.Labels) != 0 {
			t.Errorf("catalog item %d mutated: score=%v labels=%v", it.ID, it.Score, it.Labels)
		}
	}
}
