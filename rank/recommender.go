package rank

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/rerank"
)

// Recommender 是排序策略的抽象：输入偏好与候选集，输出有序推荐。
// 对任意合法输入都不失败；空目录或空偏好集只是产出空结果。
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, preferences []string, items []*core.Item) ([]*core.Item, error)
}

// RuleBasedRecommender 是规则排序策略的便捷封装：RuleNode + TopN 截断。
// 返回至多 TopN 条（默认 10），顺序确定（相同输入恒产出相同输出）。
type RuleBasedRecommender struct {
	// TopN <= 0 时使用默认值 10
	TopN int
}

func (r *RuleBasedRecommender) Name() string { return "rule_based" }

func (r *RuleBasedRecommender) Recommend(
	ctx context.Context,
	preferences []string,
	items []*core.Item,
) ([]*core.Item, error) {
	n := r.TopN
	if n <= 0 {
		n = core.Defaults.DefaultTopN()
	}
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&RuleNode{},
			&rerank.TopNNode{N: n},
		},
	}
	rctx := &core.RecommendContext{Preferences: preferences}
	return p.Run(ctx, rctx, items)
}
