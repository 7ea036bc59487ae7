package rerank

import (
	"context"
	"sort"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
)

// TopNNode 是排序 + Top-N 截断节点，通常作为链路的最后一环。
//
// 排序规则：按 Score 降序的稳定排序——同分影片保持输入（即目录）顺序，
// 保证两次相同请求返回完全一致的列表。
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.HybridRecall{...},           // 混合打分
//	        &filter.FilterNode{Filters: ...},    // 剔除已评分
//	        &rerank.TopNNode{N: 12},             // 排序并截取 Top 12
//	    },
//	}
type TopNNode struct {
	// N 要保留的影片数量（Top N）
	// 如果 N <= 0，则使用 rctx.TopN；两者都 <= 0 时只排序不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	topN := n.N
	if topN <= 0 && rctx != nil {
		topN = rctx.TopN
	}
	if topN <= 0 || len(items) <= topN {
		return items, nil
	}
	return items[:topN], nil
}
