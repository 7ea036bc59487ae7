package pipeline

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Kind 标记节点所处的链路阶段，供编排与观测使用。
type Kind string

const (
	KindRecall Kind = "recall" // 打分阶段：生成带分数的候选集
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选（如已评分影片）
	KindReRank Kind = "rerank" // 重排阶段：排序与截断
)

// Node 是链路的最小可扩展单元，形态统一为 items 进、items 出：
// 打分节点凭空生成候选，过滤节点收缩候选，截断节点排序并裁剪。
// 自定义节点实现此接口即可插入链路任意位置。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
