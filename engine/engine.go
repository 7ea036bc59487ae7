// Package engine 把目录、两个打分模型、过滤与缓存装配成完整的推荐引擎。
//
// 一次请求的数据流：
//
//	Recommend(userID) → 拉取用户画像 → 指纹查缓存
//	  → miss 时运行 Pipeline（混合打分 → 已评分过滤 → TopN）→ 写缓存并返回
//
// 推荐计算是 (目录状态, 用户可见评分) 的纯函数：输入相同则输出相同，
// 不同用户的请求可以无协调地并发执行；唯一的共享可变结构是缓存，
// 由 cache 包内部的一把锁保护。
package engine

import (
	"context"
	"strconv"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/cache"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/filter"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/recall"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/rerank"
)

// DefaultTopN 是未指定 topN 时的默认返回数量。
const DefaultTopN = 12

// Engine 是混合推荐引擎。
// 目录与内容模型在构建时固定；协同模型在每次请求时用最新评分重建；
// 多个 Engine 实例可以共存（没有包级单例），便于测试与多副本部署。
type Engine struct {
	catalog *catalog.Catalog
	ratings core.RatingStore
	cache   *cache.Cache
	pipe    *pipeline.Pipeline

	defaultTopN int
}

// Option 配置 Engine 的可选项。
type Option func(*options)

type options struct {
	cacheCapacity int
	defaultTopN   int
	extraFilters  []filter.Filter
}

// WithCacheCapacity 设置缓存的 LRU 容量上限。
func WithCacheCapacity(capacity int) Option {
	return func(o *options) { o.cacheCapacity = capacity }
}

// WithDefaultTopN 设置未显式指定 topN 时的默认返回数量。
func WithDefaultTopN(n int) Option {
	return func(o *options) { o.defaultTopN = n }
}

// WithFilters 追加业务过滤器（如 CEL 规则过滤），在已评分过滤之后执行。
func WithFilters(fs ...filter.Filter) Option {
	return func(o *options) { o.extraFilters = append(o.extraFilters, fs...) }
}

// New 构建推荐引擎。catalog 与 ratings 是必需的协作方。
func New(cat *catalog.Catalog, ratings core.RatingStore, opts ...Option) *Engine {
	o := &options{defaultTopN: DefaultTopN}
	for _, opt := range opts {
		opt(o)
	}

	filters := append([]filter.Filter{&filter.RatedFilter{}}, o.extraFilters...)

	return &Engine{
		catalog: cat,
		ratings: ratings,
		cache:   cache.New(o.cacheCapacity),
		pipe: &pipeline.Pipeline{
			Nodes: []pipeline.Node{
				&recall.HybridRecall{Catalog: cat, Ratings: ratings},
				&filter.FilterNode{Filters: filters},
				&rerank.TopNNode{}, // N 取自 rctx.TopN
			},
		},
		defaultTopN: o.defaultTopN,
	}
}

// Catalog 返回引擎使用的目录索引。
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Recommend 为用户生成不超过 topN 条的排序推荐列表（分数降序，[0, 1]）。
// 返回的影片与用户已评分集合保证无交集；列表归调用方所有，
// 改动其中的 Score/Labels 不影响缓存里的结果。
//
// 冷启动（用户没有任何评分）时跳过两个模型，按目录顺序返回前 topN 部影片，
// 分数为 0——不做任何个性化。
//
// 评分存储不可用时请求直接失败：引擎绝不静默降级成只用内容分。
func (e *Engine) Recommend(ctx context.Context, userID int64, topN int) ([]*core.Item, error) {
	if topN <= 0 {
		topN = e.defaultTopN
	}

	profile, err := e.ratings.RatingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:  userID,
		TopN:    topN,
		Profile: profile,
	}

	if rctx.ColdStart() {
		return e.coldStart(topN), nil
	}

	// 指纹附带 topN：同一画像下不同数量的请求是不同的缓存条目
	fp := cache.Fingerprint(profile) + "#" + strconv.Itoa(topN)
	return e.cache.GetOrCompute(userID, fp, func() ([]*core.Item, error) {
		return e.pipe.Run(ctx, rctx, nil)
	})
}

func (e *Engine) coldStart(topN int) []*core.Item {
	items := e.catalog.Items()
	if topN > len(items) {
		topN = len(items)
	}
	out := make([]*core.Item, topN)
	for i := 0; i < topN; i++ {
		out[i] = items[i].Clone() // Score 0，不做个性化
	}
	return out
}

// UpsertRating 写入/覆盖一条评分并使该用户的缓存失效。
// 只失效受影响用户的条目，其他用户的缓存不受影响。
func (e *Engine) UpsertRating(ctx context.Context, userID, itemID int64, value float64) error {
	if err := e.ratings.Upsert(ctx, userID, itemID, value); err != nil {
		return err
	}
	e.cache.Invalidate(userID)
	return nil
}

// DeleteRatings 删除某个用户的全部评分并使其缓存失效。
func (e *Engine) DeleteRatings(ctx context.Context, userID int64) error {
	if err := e.ratings.DeleteAll(ctx, userID); err != nil {
		return err
	}
	e.cache.Invalidate(userID)
	return nil
}

// InvalidateUser 供在引擎之外直接改动评分存储的调用方手动失效缓存。
func (e *Engine) InvalidateUser(userID int64) {
	e.cache.Invalidate(userID)
}

// InvalidateAll 清空全部缓存。
func (e *Engine) InvalidateAll() {
	e.cache.InvalidateAll()
}
