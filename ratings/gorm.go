package ratings

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// UserRating 是应用内评分的持久化模型，对应 user_ratings 表。
// UNIQUE(user_id, movie_id) 保证每个 (user, item) 至多一条记录。
type UserRating struct {
	ID      uint    `gorm:"primaryKey"`
	UserID  int64   `gorm:"not null;uniqueIndex:idx_user_movie"`
	MovieID int64   `gorm:"not null;uniqueIndex:idx_user_movie"`
	Rating  float64 `gorm:"not null"`
}

func (UserRating) TableName() string { return "user_ratings" }

// Gorm 是数据库实现的 core.RatingStore（默认 SQLite）。
// 应用内的实时评分落在这里，跨进程重启保留；
// 通常用 WithSeed 把它与静态种子数据叠成合并视图后再交给引擎。
type Gorm struct {
	db *gorm.DB
}

// OpenSQLite 打开（必要时创建）SQLite 库并完成建表。
func OpenSQLite(path string) (*Gorm, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewGorm(db)
}

// NewGorm 用已有的 *gorm.DB 构建评分存储并自动迁移表结构。
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&UserRating{}); err != nil {
		return nil, fmt.Errorf("migrate user_ratings: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Name() string { return "gorm" }

func (g *Gorm) AllRatings(ctx context.Context) ([]core.Rating, error) {
	var rows []UserRating
	err := g.db.WithContext(ctx).
		Order("user_id, movie_id").
		Find(&rows).Error
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRatings, core.ErrorCodeUnavailable,
			fmt.Sprintf("ratings: load all: %v", err))
	}

	out := make([]core.Rating, len(rows))
	for i, r := range rows {
		out[i] = core.Rating{UserID: r.UserID, ItemID: r.MovieID, Value: r.Rating}
	}
	return out, nil
}

func (g *Gorm) RatingsFor(ctx context.Context, userID int64) (map[int64]float64, error) {
	var rows []UserRating
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRatings, core.ErrorCodeUnavailable,
			fmt.Sprintf("ratings: load user %d: %v", userID, err))
	}

	out := make(map[int64]float64, len(rows))
	for _, r := range rows {
		out[r.MovieID] = r.Rating
	}
	return out, nil
}

func (g *Gorm) Upsert(ctx context.Context, userID, itemID int64, value float64) error {
	if err := core.ValidateRating(value); err != nil {
		return err
	}

	row := UserRating{UserID: userID, MovieID: itemID, Rating: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating"}),
	}).Create(&row).Error
	if err != nil {
		return core.NewDomainError(core.ModuleRatings, core.ErrorCodeInternalError,
			fmt.Sprintf("ratings: upsert (%d, %d): %v", userID, itemID, err))
	}
	return nil
}

func (g *Gorm) DeleteAll(ctx context.Context, userID int64) error {
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&UserRating{}).Error
	if err != nil {
		return core.NewDomainError(core.ModuleRatings, core.ErrorCodeInternalError,
			fmt.Sprintf("ratings: delete user %d: %v", userID, err))
	}
	return nil
}

var _ core.RatingStore = (*Gorm)(nil)
