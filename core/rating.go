package core

import (
	"context"
	"fmt"
)

// 评分取值范围。越界的写入在 RatingStore 边界被拒绝，
// 引擎内部假定收到的评分都已合法。
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// Rating 是一条用户评分：(user, item, value)，value ∈ [RatingMin, RatingMax]。
// 每个 (user, item) 至多一条记录，重复写入按 upsert 语义覆盖。
type Rating struct {
	UserID int64
	ItemID int64
	Value  float64
}

// RatingStore 是评分数据的领域接口：推荐引擎的外部协作方。
// 历史种子数据和应用内实时评分合并成同一视图返回。
//
// 实现：
//   - ratings.Memory（进程内，可从 CSV 种子加载）
//   - ratings.StoreAdapter（JSON over core.Store，可落 Redis）
//   - ratings.Gorm（SQLite 持久化，沿用应用的 user_ratings 表）
type RatingStore interface {
	// Name 返回后端名称（用于日志/监控）
	Name() string

	// AllRatings 返回全部评分（种子 + 应用内）的合并视图
	AllRatings(ctx context.Context) ([]Rating, error)

	// RatingsFor 返回某个用户的评分画像：itemID -> value
	RatingsFor(ctx context.Context, userID int64) (map[int64]float64, error)

	// Upsert 写入/覆盖一条评分；value 越界返回 INVALID_INPUT
	Upsert(ctx context.Context, userID, itemID int64, value float64) error

	// DeleteAll 删除某个用户的全部评分
	DeleteAll(ctx context.Context, userID int64) error
}

// ValidateRating 校验评分值是否落在 [RatingMin, RatingMax]。
// 各 RatingStore 实现统一在写入前调用。
func ValidateRating(value float64) error {
	if value < RatingMin || value > RatingMax {
		return NewDomainError(ModuleRatings, ErrorCodeInvalidInput,
			fmt.Sprintf("ratings: value %.2f out of range [%.1f, %.1f]", value, RatingMin, RatingMax))
	}
	return nil
}
