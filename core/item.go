package core

import "github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/utils"

// Item 是推荐链路中的统一承载结构：影片元信息、分数、标签。
// Genres 保持目录文件中的原始顺序；Labels 用于解释与策略驱动，Score 用于排序决策。
type Item struct {
	ID         int64
	Title      string
	CleanTitle string // 去掉尾部 "(YYYY)" 后的标题
	Year       int    // 从标题解析出的年份，解析失败为 0
	Genres     []string
	Score      float64
	Labels     map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// Clone 返回 Item 的浅拷贝（Genres 共享，Labels 独立）。
// 目录中的 Item 不可变，进入打分链路前先 Clone 一份承载 Score/Labels。
func (it *Item) Clone() *Item {
	dup := *it
	dup.Labels = make(map[string]utils.Label, len(it.Labels))
	for k, v := range it.Labels {
		dup.Labels[k] = v
	}
	return &dup
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
