package filter

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pkg/dsl"
)

// DSLFilter 是基于 CEL 表达式的过滤器：表达式为 false 的影片被过滤。
//
// 示例：
//   - `item.rating >= 6.0` → 剔除低分影片
//   - `"Drama" in item.genres` → 只保留 Drama
type DSLFilter struct {
	// Expr 是 CEL 表达式（见 pkg/dsl）。空表达式恒真，不过滤。
	Expr string
}

func (f *DSLFilter) Name() string {
	return "filter.dsl"
}

func (f *DSLFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
