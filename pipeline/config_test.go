package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

type noopNode struct{ name string }

func (n *noopNode) Name() string { return n.name }
func (n *noopNode) Kind() Kind   { return KindFilter }
func (n *noopNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	return items, nil
}

func testFactory() *NodeFactory {
	f := NewNodeFactory()
	f.Register("noop", func(config map[string]interface{}) (Node, error) {
		return &noopNode{name: "noop"}, nil
	})
	return f
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		data string
	}{
		{
			name: "yaml",
			file: "p.yaml",
			data: "pipeline:\n  name: demo\n  nodes:\n    - type: noop\n",
		},
		{
			name: "json",
			file: "p.json",
			data: `{"pipeline": {"name": "demo", "nodes": [{"type": "noop"}]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Pipeline.Name != "demo" || len(cfg.Pipeline.Nodes) != 1 {
				t.Errorf("cfg = %+v", cfg.Pipeline)
			}

			pipe, err := cfg.BuildPipeline(testFactory())
			if err != nil {
				t.Fatal(err)
			}
			if pipe.Name != "demo" || len(pipe.Nodes) != 1 {
				t.Errorf("pipe = %+v", pipe)
			}
		})
	}
}

func TestBuildPipelineErrors(t *testing.T) {
	empty := &Config{}
	if _, err := empty.BuildPipeline(testFactory()); err == nil {
		t.Error("want error for empty pipeline")
	}

	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "never-registered"}}
	if _, err := cfg.BuildPipeline(testFactory()); err == nil {
		t.Error("want error for unknown node type")
	}
}

func TestPipelineRunChains(t *testing.T) {
	drop := func(keep int64) Node {
		return nodeFunc(func(items []*core.Item) []*core.Item {
			out := items[:0]
			for _, it := range items {
				if it.ID == keep {
					out = append(out, it)
				}
			}
			return out
		})
	}

	pipe := &Pipeline{Nodes: []Node{drop(2)}}
	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}
	out, err := pipe.Run(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("out = %v, want only item 2", out)
	}
}

type nodeFunc func(items []*core.Item) []*core.Item

func (nodeFunc) Name() string { return "func" }
func (nodeFunc) Kind() Kind   { return KindFilter }
func (f nodeFunc) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	return f(items), nil
}
