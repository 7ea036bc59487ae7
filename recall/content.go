package recall

import (
	"math"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
)

// ContentScorer 是基于内容的打分模型（Content-Based Scoring）。
//
// 核心思想："用户喜欢某些 genre 的影片，给 genre 组成相似的其他影片更高的分"
//
// 算法流程：
//  1. 对用户评过分的每部影片，取它对全目录的相似度行
//  2. 以 clip(评分/5, 0, 1) 为权重累加到得分向量
//  3. 最大值 > 0 时整体除以最大值，得到 [0, 1] 的归一化得分
//
// 结果是确定性的且与评分遍历顺序无关（加法可交换）。
type ContentScorer struct {
	Catalog *catalog.Catalog
}

func (s *ContentScorer) Name() string {
	return "score.content"
}

// Scores 计算用户画像对全目录的内容得分向量（目录序）。
// 画像中不在目录里的 itemID 被静默跳过；空画像返回全零向量。
func (s *ContentScorer) Scores(profile map[int64]float64) []float64 {
	scores := make([]float64, s.Catalog.Len())
	if len(profile) == 0 {
		return scores
	}

	for itemID, value := range profile {
		row := s.Catalog.SimilarityRow(itemID)
		if row == nil {
			continue // 画像里引用了目录外的影片，跳过
		}
		weight := clip01(value / 5.0)
		for j, sim := range row {
			scores[j] += weight * sim
		}
	}

	normalizeMax(scores)
	return scores
}

func clip01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// normalizeMax 对得分向量做以 0 为锚的最大值归一化。
// 最大值为 0 时保持全零（退化相似度不是错误）。
func normalizeMax(scores []float64) {
	var max float64
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}
	for i := range scores {
		scores[i] /= max
	}
}
