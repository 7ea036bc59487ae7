package config

import (
	"fmt"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/filter"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/conv"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/recall"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/rerank"
)

// NewNodeFactory 返回注册了内置 Node 的工厂，配合 pipeline.Config 可以
// 用 YAML/JSON 声明式地搭建自定义 Pipeline（绕开 Engine 的默认编排）。
//
// 内置类型：
//
//	recall.hybrid —— 混合打分召回，无特定配置
//	filter        —— 过滤节点，config: rated(bool, 默认 true)、rules([]string CEL 表达式)
//	rerank.topn   —— 截断节点，config: n(int, 0 表示取 rctx.TopN)
func NewNodeFactory(cat *catalog.Catalog, rs core.RatingStore) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.hybrid", func(config map[string]interface{}) (pipeline.Node, error) {
		return &recall.HybridRecall{Catalog: cat, Ratings: rs}, nil
	})

	f.Register("filter", func(config map[string]interface{}) (pipeline.Node, error) {
		var filters []filter.Filter
		if conv.ConfigGet(config, "rated", true) {
			filters = append(filters, &filter.RatedFilter{})
		}
		for _, expr := range conv.SliceAnyToString(config["rules"]) {
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", expr, err)
			}
			filters = append(filters, rf)
		}
		return &filter.FilterNode{Filters: filters}, nil
	})

	f.Register("rerank.topn", func(config map[string]interface{}) (pipeline.Node, error) {
		n := conv.ConfigGetInt64(config, "n", 0)
		return &rerank.TopNNode{N: int(n)}, nil
	})

	return f
}
