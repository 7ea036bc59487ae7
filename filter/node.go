package filter

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/utils"
)

// FilterNode 把多个过滤器组合成一个链路节点。
// 过滤器按声明顺序短路求值：第一个命中的过滤器决定剔除，其名字记入
// "filtered" 标签；单个过滤器报错只跳过它自己，不影响其余过滤器与请求。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter.node" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if by := n.dropReason(ctx, rctx, item); by != "" {
			item.PutLabel("filtered", utils.Label{Value: "true", Source: by})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// dropReason 返回第一个命中的过滤器名；保留该影片时返回空串。
func (n *FilterNode) dropReason(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) string {
	for _, f := range n.Filters {
		drop, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			continue
		}
		if drop {
			return f.Name()
		}
	}
	return ""
}
