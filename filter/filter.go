// Package filter 实现推荐链路的过滤阶段：从候选集中剔除不该出现的影片。
// 内置两种过滤器：已评分剔除（硬性不变量）与 CEL 规则剔除（业务策略）。
package filter

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Filter 判断单个候选影片是否应从结果中剔除。
// 返回 true 表示剔除；error 表示该过滤器对此影片无法给出判断
// （FilterNode 会跳过报错的过滤器而不是中断请求）。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
