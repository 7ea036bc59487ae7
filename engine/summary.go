package engine

import (
	"context"
	"sort"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Summary 是用户画像的概览，供仪表盘类展示使用。
type Summary struct {
	UserID      int64
	RatingCount int
	// TopGenre 是用户评分过的影片中出现次数最多的题材；
	// 次数相同取字典序最小者，没有评分时为空串。
	TopGenre string
	// ScorePercent 是平均评分折算成的百分比（平均分 / 5 * 100，四舍五入）。
	ScorePercent int
	AverageScore float64
}

// ProfileSummary 统计用户的评分数量、偏好题材与平均评分。
// 评分过但不在目录中的影片计入数量与平均分，不参与题材统计。
func (e *Engine) ProfileSummary(ctx context.Context, userID int64) (Summary, error) {
	profile, err := e.ratings.RatingsFor(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{UserID: userID, RatingCount: len(profile)}
	if len(profile) == 0 {
		return s, nil
	}

	var sum float64
	counts := make(map[string]int)
	for itemID, value := range profile {
		sum += value
		it, ok := e.catalog.ByID(itemID)
		if !ok {
			continue
		}
		for _, g := range it.Genres {
			counts[g]++
		}
	}

	s.AverageScore = sum / float64(len(profile))
	s.ScorePercent = int(s.AverageScore/core.RatingMax*100 + 0.5)

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	best := -1
	for _, g := range genres {
		if counts[g] > best {
			best = counts[g]
			s.TopGenre = g
		}
	}
	return s, nil
}
