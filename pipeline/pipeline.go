package pipeline

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Pipeline 把推荐逻辑组织成可组合的节点链：
// 上一个节点的输出 items 作为下一个节点的输入，rctx 全程透传。
// 标准链路为 混合打分 → 已评分过滤 → TopN 截断，节点可自由增删替换。
type Pipeline struct {
	Name  string
	Nodes []Node
}

// Run 依序执行全部节点。任一节点出错即中断并返回该错误，
// 部分执行的中间结果不向外暴露。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
