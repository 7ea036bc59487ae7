// Package dsl 提供基于 CEL 的过滤规则解释器。
// 规则表达式作用于候选影片（item）、其标签（label）和请求上下文（rctx），
// 由 filter.RuleFilter 在链路中执行，表达式通常来自 YAML 配置。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是一条编译后的规则表达式，可以被多次并发求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score < 0.05 / item.year < 1990
//   - 标签：label.score_collab == "0.0000"
//   - 逻辑：item.score < 0.1 && rctx.cold_start == false
//   - 包含："Horror" in item.genres
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式必须产出 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program rule %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Eval 对一个候选影片求值，返回表达式的布尔结果。
// 非 bool 结果视为错误；求值错误由调用方决定是否忽略。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}

	genres := make([]any, len(item.Genres))
	for i, g := range item.Genres {
		genres[i] = g
	}

	labels := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = v.Value
	}

	vars := map[string]any{
		"item": map[string]any{
			"id":     item.ID,
			"score":  item.Score,
			"title":  item.CleanTitle,
			"year":   item.Year,
			"genres": genres,
		},
		"label": labels,
		"rctx": map[string]any{
			"user_id":    rctx.UserID,
			"top_n":      rctx.TopN,
			"cold_start": rctx.ColdStart(),
		},
	}

	out, _, err := p.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("eval rule %q: %w", p.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q: result is %T, want bool", p.expr, out.Value())
	}
	return b, nil
}
