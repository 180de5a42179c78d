package rerank

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个影片。
// 通常在排序（Rank）节点之后使用，用于限制返回结果数量。
//
// 使用场景：
//   - 排序后只返回 Top 10 个结果
//   - 配合多样性重排使用
type TopNNode struct {
	// N 要保留的影片数量（Top N）
	// 如果 N <= 0，则返回所有影片（不截断）
	// 如果 N > len(items)，则返回所有影片
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}

	if len(items) <= n.N {
		return items, nil
	}

	return items[:n.N], nil
}
