// Package smartrecs 是一个混合电影推荐工具包。
//
// 设计要点：
// - 双模型混合: 基于题材 TF-IDF 的内容相似度 + 基于用户的协同过滤，固定 0.5/0.5 加权
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank），自定义 Node 即可插拔扩展
// - Labels-first: 每个候选携带两路原始分数等标签，支持 explain / 观测
// - 缓存按 (用户, 画像指纹) 键控：评分一变指纹即变，旧缓存自然失效
//
// 快速上手见 engine.New 与 examples/ 目录。
package smartrecs

import "github.com/skumalo0115-commits/SmartRecs-AI-Movies/pipeline"

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
