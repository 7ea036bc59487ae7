package core

import "github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/utils"

// RecommendContext 承载一次推荐请求的用户信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID int64

	// TopN 期望返回的结果数量；<= 0 时由各节点使用自己的默认值。
	TopN int

	// Profile 是用户当前的评分画像：itemID -> 评分值（[1,5]）。
	// 两个打分模型和已评分过滤都以它为准；空 map 即冷启动。
	Profile map[int64]float64

	// Labels 是用户级标签，可驱动整个 Pipeline 行为（新用户、重度用户等）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（scene、实验分组等），按需取用。
	Params map[string]any
}

// HasRated 判断用户是否已对 itemID 评过分。
func (rctx *RecommendContext) HasRated(itemID int64) bool {
	if rctx == nil || rctx.Profile == nil {
		return false
	}
	_, ok := rctx.Profile[itemID]
	return ok
}

// ColdStart 判断是否为冷启动用户（画像为空，无任何评分可用）。
func (rctx *RecommendContext) ColdStart() bool {
	return rctx == nil || len(rctx.Profile) == 0
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
