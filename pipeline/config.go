package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config 是声明式的 Pipeline 描述，支持 YAML 与 JSON 两种载体。
// 节点按声明顺序串联，推荐链路通常为 recall.hybrid → filter → rerank.topn。
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline"`
}

// PipelineConfig 描述一条链路：名称 + 有序的节点列表。
type PipelineConfig struct {
	Name  string       `yaml:"name" json:"name"`
	Nodes []NodeConfig `yaml:"nodes" json:"nodes"`
}

// NodeConfig 是单个节点的声明。
type NodeConfig struct {
	Type   string                 `yaml:"type" json:"type"`     // recall.hybrid / filter / rerank.topn
	Config map[string]interface{} `yaml:"config" json:"config"` // 节点特定配置，可省略
}

// Load 从文件读取 Pipeline 声明，按扩展名选择解析器（.json 之外按 YAML 处理）。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	var cfg Config
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse pipeline config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse pipeline config %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// BuildPipeline 按声明顺序构建 Pipeline。
// 节点类型必须全部已在 factory 中注册；空链路视为配置错误。
func (c *Config) BuildPipeline(factory *NodeFactory) (*Pipeline, error) {
	if len(c.Pipeline.Nodes) == 0 {
		return nil, fmt.Errorf("pipeline %q: no nodes declared", c.Pipeline.Name)
	}

	nodes := make([]Node, 0, len(c.Pipeline.Nodes))
	for i, nc := range c.Pipeline.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q node %d (%s): %w", c.Pipeline.Name, i, nc.Type, err)
		}
		nodes = append(nodes, node)
	}
	return &Pipeline{Name: c.Pipeline.Name, Nodes: nodes}, nil
}

// NodeFactory 把节点类型名映射到构建函数。
// 工厂本身不持有业务依赖；构建函数通过闭包捕获目录、评分存储等协作方
// （见 config.NewNodeFactory）。
type NodeFactory struct {
	builders map[string]func(map[string]interface{}) (Node, error)
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{
		builders: make(map[string]func(map[string]interface{}) (Node, error)),
	}
}

// Register 注册一个节点类型；同名注册后写覆盖先写。
func (f *NodeFactory) Register(nodeType string, builder func(map[string]interface{}) (Node, error)) {
	f.builders[nodeType] = builder
}

// Types 返回已注册的节点类型，字典序。
func (f *NodeFactory) Types() []string {
	out := make([]string, 0, len(f.builders))
	for t := range f.builders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Build 按类型构建节点实例。
func (f *NodeFactory) Build(nodeType string, config map[string]interface{}) (Node, error) {
	builder, ok := f.builders[nodeType]
	if !ok {
		return nil, fmt.Errorf("unknown node type %q (registered: %v)", nodeType, f.Types())
	}
	return builder(config)
}
