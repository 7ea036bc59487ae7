package config

import (
	"context"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/ratings"
)

func TestNodeFactoryPipeline(t *testing.T) {
	cat, err := catalog.New([]catalog.Movie{
		{ID: 1, Title: "Metropolis (1927)", Genres: "Drama|Sci-Fi"},
		{ID: 2, Title: "Blade Runner (1982)", Genres: "Sci-Fi|Thriller"},
		{ID: 3, Title: "Gattaca (1997)", Genres: "Drama|Sci-Fi|Thriller"},
		{ID: 4, Title: "Arrival (2016)", Genres: "Drama|Sci-Fi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	rs := ratings.NewMemory()
	rs.Seed([]core.Rating{{UserID: 1, ItemID: 2, Value: 5.0}})

	var cfg pipeline.Config
	if err := yaml.Unmarshal([]byte(`
pipeline:
  name: movies
  nodes:
    - type: recall.hybrid
    - type: filter
      config:
        rated: true
        rules:
          - 'item.year < 1990'
    - type: rerank.topn
      config:
        n: 2
`), &cfg); err != nil {
		t.Fatal(err)
	}

	pipe, err := cfg.BuildPipeline(NewNodeFactory(cat, rs))
	if err != nil {
		t.Fatal(err)
	}

	rctx := &core.RecommendContext{UserID: 1, Profile: map[int64]float64{2: 5.0}}
	items, err := pipe.Run(context.Background(), rctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) == 0 || len(items) > 2 {
		t.Fatalf("got %d items, want 1..2", len(items))
	}
	for _, it := range items {
		if it.ID == 2 {
			t.Error("rated movie passed the filter")
		}
		if it.Year < 1990 {
			t.Errorf("movie %d from %d passed the rule", it.ID, it.Year)
		}
	}
}

func TestNodeFactoryUnknownType(t *testing.T) {
	f := NewNodeFactory(nil, nil)
	if _, err := f.Build("recall.magic", nil); err == nil {
		t.Error("want error for unregistered node type")
	}
}
