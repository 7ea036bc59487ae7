// Package config 提供从 YAML 文件一键装配推荐引擎的能力：
// 目录 CSV 路径、评分存储后端（内存 / SQLite / Redis）、种子评分、
// 缓存容量与 CEL 过滤规则都可以在配置里声明，Build 返回组装好的 Engine。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/catalog"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/engine"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/filter"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/ratings"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/store"
)

// Config 是引擎的顶层配置。
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Ratings RatingsConfig `yaml:"ratings"`
	Engine  EngineConfig  `yaml:"engine"`
}

// CatalogConfig 指定影片目录的来源。
type CatalogConfig struct {
	Path string `yaml:"path"` // movies.csv 路径
}

// RatingsConfig 指定评分存储后端。
type RatingsConfig struct {
	// Backend 取值 memory（默认）/ sqlite / redis。
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`   // sqlite 数据库文件
	Addr    string `yaml:"addr"`   // redis 地址，如 127.0.0.1:6379
	DB      int    `yaml:"db"`     // redis DB 序号
	Prefix  string `yaml:"prefix"` // redis key 前缀，默认 ratings
	// Seed 是可选的种子评分 CSV。种子只读，用户写入落到上面的后端，
	// 同一 (user, item) 以后端为准。
	Seed string `yaml:"seed"`
}

// EngineConfig 是引擎行为相关的配置。
type EngineConfig struct {
	CacheCapacity int `yaml:"cache_capacity"`
	DefaultTopN   int `yaml:"default_top_n"`
	// Rules 是 CEL 过滤规则，命中即从结果中剔除，如 "item.year < 1990"。
	Rules []string `yaml:"rules"`
}

// Load 从 YAML 文件读取配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置内容。
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Build 按配置装配推荐引擎。
func (c *Config) Build() (*engine.Engine, error) {
	if c.Catalog.Path == "" {
		return nil, fmt.Errorf("config: catalog.path is required")
	}
	cat, err := catalog.LoadCSV(c.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rs, err := c.buildRatings()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{}
	if c.Engine.CacheCapacity > 0 {
		opts = append(opts, engine.WithCacheCapacity(c.Engine.CacheCapacity))
	}
	if c.Engine.DefaultTopN > 0 {
		opts = append(opts, engine.WithDefaultTopN(c.Engine.DefaultTopN))
	}
	for _, expr := range c.Engine.Rules {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", expr, err)
		}
		opts = append(opts, engine.WithFilters(rf))
	}

	return engine.New(cat, rs, opts...), nil
}

func (c *Config) buildRatings() (core.RatingStore, error) {
	var live core.RatingStore
	switch c.Ratings.Backend {
	case "", "memory":
		live = ratings.NewMemory()
	case "sqlite":
		if c.Ratings.Path == "" {
			return nil, fmt.Errorf("config: ratings.path is required for sqlite backend")
		}
		g, err := ratings.OpenSQLite(c.Ratings.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite ratings: %w", err)
		}
		live = g
	case "redis":
		if c.Ratings.Addr == "" {
			return nil, fmt.Errorf("config: ratings.addr is required for redis backend")
		}
		rs, err := store.NewRedisStore(c.Ratings.Addr, c.Ratings.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		live = ratings.NewStoreAdapter(rs, c.Ratings.Prefix)
	default:
		return nil, fmt.Errorf("config: unknown ratings backend %q", c.Ratings.Backend)
	}

	if c.Ratings.Seed != "" {
		seed, err := ratings.LoadCSV(c.Ratings.Seed)
		if err != nil {
			return nil, fmt.Errorf("load seed ratings: %w", err)
		}
		live = ratings.WithSeed(seed, live)
	}
	return live, nil
}
