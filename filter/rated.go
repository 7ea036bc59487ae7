package filter

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// RatedFilter 是已评分过滤器，剔除用户已经评过分的影片。
// 推荐结果与用户已评分集合的交集必须为空，这是引擎的硬性不变量。
//
// 评分画像直接取自 RecommendContext.Profile，不访问存储：
// 引擎在请求入口已经拉取过一次画像，过滤阶段复用同一份数据，
// 保证同一次请求内打分与过滤看到的画像一致。
type RatedFilter struct{}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return rctx.HasRated(item.ID), nil
}
