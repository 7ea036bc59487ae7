package recall

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/utils"
)

// 混合权重固定为等权，不提供配置项。
const (
	contentWeight = 0.5
	collabWeight  = 0.5
)

// HybridRecall 是混合打分 Node：并发执行内容模型与协同模型，
// 按固定等权合并为一个得分向量，产出目录序的候选列表。
//
// 两个模型都把得分归一化到 [0, 1]，因此混合分也落在 [0, 1]。
// 每个候选带 score_content / score_collab 标签，便于 explain / 观测。
//
// 评分数据在每次请求时从 RatingStore 现拉（引擎不缓存模型状态）；
// RatingStore 不可用时请求直接失败，绝不静默降级成只用内容分。
type HybridRecall struct {
	Catalog *catalog.Catalog
	Ratings core.RatingStore

	// Content / Collab 为空时按 Catalog 自动构建，便于测试替换。
	Content *ContentScorer
	Collab  *CollaborativeScorer
}

func (n *HybridRecall) Name() string        { return "recall.hybrid" }
func (n *HybridRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *HybridRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	content := n.Content
	if content == nil {
		content = &ContentScorer{Catalog: n.Catalog}
	}
	collab := n.Collab
	if collab == nil {
		collab = &CollaborativeScorer{Catalog: n.Catalog}
	}

	var (
		contentScores []float64
		collabScores  []float64
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		contentScores = content.Scores(rctx.Profile)
		return nil
	})
	eg.Go(func() error {
		all, err := n.Ratings.AllRatings(ctx)
		if err != nil {
			return err
		}
		collabScores = collab.Scores(rctx.UserID, all)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]*core.Item, n.Catalog.Len())
	for j, it := range n.Catalog.Items() {
		cand := it.Clone()
		cand.Score = contentWeight*contentScores[j] + collabWeight*collabScores[j]
		cand.PutLabel("score_content", utils.Label{
			Value:  strconv.FormatFloat(contentScores[j], 'f', 4, 64),
			Source: "content",
		})
		cand.PutLabel("score_collab", utils.Label{
			Value:  strconv.FormatFloat(collabScores[j], 'f', 4, 64),
			Source: "collab",
		})
		out[j] = cand
	}
	return out, nil
}
