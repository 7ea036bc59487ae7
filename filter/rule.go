package filter

import (
	"context"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述"什么样的候选要被剔除"。
// 表达式求值为 true 的影片被过滤掉。
//
// 示例：
//   - `item.score < 0.01`            → 剔除低分长尾
//   - `"Horror" in item.genres`      → 剔除恐怖片
//   - `item.year != 0 && item.year < 1980` → 剔除老片
//
// 规则通常来自 YAML 配置（config 包在装配时编译）。
type RuleFilter struct {
	Program *dsl.Program
}

// NewRuleFilter 编译表达式并构建规则过滤器。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{Program: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Program == nil {
		return false, nil
	}
	return f.Program.Eval(item, rctx)
}
