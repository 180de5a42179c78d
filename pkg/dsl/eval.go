package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/cinerec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是过滤/策略表达式的解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.rating >= 6.0 / item.score > 0.7
//   - 逻辑："Action" in item.genres && item.rating > 8.0
//   - 标签：label.rank_model == "genre_match"
//   - 存在性：label.recall_source != null
//
// 示例：
//   - `item.rating >= 6.0` → 只保留评分不低于 6.0 的影片
//   - `"Drama" in item.genres` → 类型包含 Drama
//   - `label.recall_source.contains("catalog")` → 召回来源包含 catalog
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的表达式解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。
// 空表达式视为恒真。不存在的 key 在 CEL 中会报错，
// 请使用 label.key != null 检查存在性，而不是直接访问。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	for k, v := range e.item.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
	}

	item := map[string]interface{}{
		"id":     e.item.ID,
		"title":  e.item.Title,
		"genres": e.item.Genres,
		"rating": e.item.Rating,
		"score":  e.item.Score,
		"meta":   e.item.Meta,
		"labels": labels,
	}

	rctx := map[string]interface{}{
		"preferences": e.rctx.Preferences,
		"params":      e.rctx.Params,
	}
	if e.rctx.User != nil {
		rctx["user_name"] = e.rctx.User.Name
		rctx["user_age"] = e.rctx.User.Age
	}

	// label 作为顶层访问器：label.rank_model 直接取 value
	labelAccessor := make(map[string]interface{})
	for k, v := range labels {
		labelAccessor[k] = v.(map[string]interface{})["value"]
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
