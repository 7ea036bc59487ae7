package recall

import (
	"math"
	"sort"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// CollaborativeScorer 是基于用户的协同过滤打分模型（User-based CF）。
//
// 核心思想："兴趣相似的用户，喜欢相似的影片"
//
// 算法流程：
//  1. 用全量评分构建稠密的 用户 × 影片 矩阵（行 = 至少有一条目录内评分的用户，
//     列 = 目录序的全部影片，未评分格为 0）
//  2. 计算目标用户行与其他每个用户行的余弦相似度
//  3. 对目标用户未评分的每部影片做加权预测，最后最大值归一化
//
// 预测公式：
//
//	pred(j) = Σ(sim_u × rating_u(j)) / Σ|sim_u|
//
// 分母对所有邻居求和，不论该邻居是否评过影片 j——评分稀疏的影片预测值
// 因此被稀释。这是刻意保留的行为，不要"修正"。
//
// 矩阵在每次请求时从头重建（评分随时可能变化，没有增量维护）；
// 该实现藏在 Scores 接口之后，后续可以替换为增量结构而不影响调用方。
type CollaborativeScorer struct {
	Catalog *catalog.Catalog
}

func (s *CollaborativeScorer) Name() string {
	return "score.collab"
}

// Scores 用全量评分为 userID 计算协同得分向量（目录序，[0, 1]）。
// 目标用户不在矩阵中（没有任何目录内评分）时返回全零向量；
// 用户已评分的影片在输出里保持 0，由上游过滤负责剔除。
func (s *CollaborativeScorer) Scores(userID int64, all []core.Rating) []float64 {
	n := s.Catalog.Len()
	scores := make([]float64, n)

	rows := s.buildMatrix(all)
	target, ok := rows[userID]
	if !ok {
		return scores
	}

	// 邻居按 userID 排序，保证两次请求的遍历顺序一致
	neighborIDs := make([]int64, 0, len(rows)-1)
	for uid := range rows {
		if uid != userID {
			neighborIDs = append(neighborIDs, uid)
		}
	}
	sort.Slice(neighborIDs, func(i, j int) bool { return neighborIDs[i] < neighborIDs[j] })

	sims := make([]float64, len(neighborIDs))
	var simAbsSum float64
	for i, uid := range neighborIDs {
		sims[i] = cosine(target, rows[uid])
		simAbsSum += math.Abs(sims[i])
	}

	for j := 0; j < n; j++ {
		if target[j] > 0 {
			continue // 已评分影片不打分
		}
		if simAbsSum == 0 {
			continue
		}
		var num float64
		for i, uid := range neighborIDs {
			num += sims[i] * rows[uid][j]
		}
		scores[j] = num / simAbsSum
	}

	normalizeMax(scores)
	return scores
}

// buildMatrix 构建 用户 -> 稠密评分行 的矩阵。
// 目录外的 itemID 被静默跳过；同一 (user, item) 后写覆盖先写（upsert 语义）。
func (s *CollaborativeScorer) buildMatrix(all []core.Rating) map[int64][]float64 {
	rows := make(map[int64][]float64)
	for _, r := range all {
		pos, ok := s.Catalog.Position(r.ItemID)
		if !ok {
			continue
		}
		row, ok := rows[r.UserID]
		if !ok {
			row = make([]float64, s.Catalog.Len())
			rows[r.UserID] = row
		}
		row[pos] = r.Value
	}
	return rows
}

// cosine 计算两个等长稠密向量的余弦相似度。
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
