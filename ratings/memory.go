// Package ratings 提供 core.RatingStore 的若干实现：推荐引擎的评分数据协作方。
//
// 所有实现遵守同一份契约：
//   - (user, item) 至多一条记录，重复写入按 upsert 覆盖
//   - 评分值在写入边界校验进 [1.0, 5.0]，引擎假定收到的都是合法值
//   - AllRatings 返回种子数据与应用内数据合并后的单一视图（见 Seeded）
package ratings

import (
	"context"
	"sort"
	"sync"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Memory 是进程内的评分存储，用于测试/开发/原型。
// 可以用 Seed 预置历史数据，或配合 LoadCSV 从种子文件加载。
type Memory struct {
	mu     sync.RWMutex
	byUser map[int64]map[int64]float64
}

func NewMemory() *Memory {
	return &Memory{byUser: make(map[int64]map[int64]float64)}
}

func (m *Memory) Name() string { return "memory" }

// Seed 批量预置评分，跳过越界值的校验交给调用方（种子文件视为可信）。
func (m *Memory) Seed(rs []core.Rating) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rs {
		row := m.byUser[r.UserID]
		if row == nil {
			row = make(map[int64]float64)
			m.byUser[r.UserID] = row
		}
		row[r.ItemID] = r.Value
	}
}

func (m *Memory) AllRatings(ctx context.Context) ([]core.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Rating, 0, len(m.byUser))
	for uid, row := range m.byUser {
		for iid, v := range row {
			out = append(out, core.Rating{UserID: uid, ItemID: iid, Value: v})
		}
	}
	// 固定输出顺序，保证上游计算可复现
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (m *Memory) RatingsFor(ctx context.Context, userID int64) (map[int64]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int64]float64, len(m.byUser[userID]))
	for iid, v := range m.byUser[userID] {
		out[iid] = v
	}
	return out, nil
}

func (m *Memory) Upsert(ctx context.Context, userID, itemID int64, value float64) error {
	if err := core.ValidateRating(value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	row := m.byUser[userID]
	if row == nil {
		row = make(map[int64]float64)
		m.byUser[userID] = row
	}
	row[itemID] = value
	return nil
}

func (m *Memory) DeleteAll(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byUser, userID)
	return nil
}

var _ core.RatingStore = (*Memory)(nil)
