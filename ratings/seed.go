package ratings

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// LoadCSV 从种子文件加载历史评分。
// 期望表头为 user_id,movie_id,rating；多余列（如 timestamp）被忽略。
func LoadCSV(path string) ([]core.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings seed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []core.Rating
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ratings seed: %w", err)
		}
		line++
		if len(rec) < 3 {
			return nil, fmt.Errorf("ratings seed line %d: want 3 fields, got %d", line, len(rec))
		}
		uid, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			if line == 1 {
				continue // 表头
			}
			return nil, fmt.Errorf("ratings seed line %d: bad user id %q", line, rec[0])
		}
		iid, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ratings seed line %d: bad movie id %q", line, rec[1])
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("ratings seed line %d: bad rating %q", line, rec[2])
		}
		out = append(out, core.Rating{UserID: uid, ItemID: iid, Value: val})
	}
	return out, nil
}

// Seeded 把静态种子数据与一个可写的实时存储合并成单一视图。
//
//   - 读：种子与实时数据叠加，同一 (user, item) 以实时数据为准（upsert 语义）
//   - 写：全部落到实时存储；种子不可变
//   - DeleteAll：只清实时数据，种子中的历史评分仍然可见
type Seeded struct {
	seed map[int64]map[int64]float64
	live core.RatingStore
}

// WithSeed 构建 Seeded 视图。
func WithSeed(seed []core.Rating, live core.RatingStore) *Seeded {
	byUser := make(map[int64]map[int64]float64)
	for _, r := range seed {
		row := byUser[r.UserID]
		if row == nil {
			row = make(map[int64]float64)
			byUser[r.UserID] = row
		}
		row[r.ItemID] = r.Value
	}
	return &Seeded{seed: byUser, live: live}
}

func (s *Seeded) Name() string { return "seeded(" + s.live.Name() + ")" }

func (s *Seeded) AllRatings(ctx context.Context) ([]core.Rating, error) {
	liveAll, err := s.live.AllRatings(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[int64]map[int64]float64, len(s.seed))
	for uid, row := range s.seed {
		dup := make(map[int64]float64, len(row))
		for iid, v := range row {
			dup[iid] = v
		}
		merged[uid] = dup
	}
	for _, r := range liveAll {
		row := merged[r.UserID]
		if row == nil {
			row = make(map[int64]float64)
			merged[r.UserID] = row
		}
		row[r.ItemID] = r.Value
	}

	out := make([]core.Rating, 0, len(liveAll))
	for uid, row := range merged {
		for iid, v := range row {
			out = append(out, core.Rating{UserID: uid, ItemID: iid, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (s *Seeded) RatingsFor(ctx context.Context, userID int64) (map[int64]float64, error) {
	liveRow, err := s.live.RatingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]float64, len(liveRow)+len(s.seed[userID]))
	for iid, v := range s.seed[userID] {
		out[iid] = v
	}
	for iid, v := range liveRow {
		out[iid] = v
	}
	return out, nil
}

func (s *Seeded) Upsert(ctx context.Context, userID, itemID int64, value float64) error {
	return s.live.Upsert(ctx, userID, itemID, value)
}

func (s *Seeded) DeleteAll(ctx context.Context, userID int64) error {
	return s.live.DeleteAll(ctx, userID)
}

var _ core.RatingStore = (*Seeded)(nil)
