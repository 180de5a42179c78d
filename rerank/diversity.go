package rerank

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pipeline"
)

// Diversity 是一个类型多样性 ReRank：限制同一主类型的连续堆积。
// 每个影片以其第一个类型标签为主类型；同一主类型最多保留 MaxPerGenre 条，
// 超出的影片顺延到尾部而不是丢弃，整体仍保持组内相对顺序。
//
// 用在 TopN 截断之前，可以避免 "前 10 全是同一类型" 的结果。
type Diversity struct {
	// MaxPerGenre 同一主类型最多保留的条数，<=0 时默认 3
	MaxPerGenre int
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerGenre
	if limit <= 0 {
		limit = 3
	}

	count := make(map[string]int, 16)
	kept := make([]*core.Item, 0, len(items))
	deferred := make([]*core.Item, 0)

	for _, it := range items {
		if it == nil {
			continue
		}

		primary := ""
		if len(it.Genres) > 0 {
			primary = it.Genres[0]
		}
		if primary == "" {
			kept = append(kept, it)
			continue
		}

		if count[primary] >= limit {
			deferred = append(deferred, it)
			continue
		}
		count[primary]++
		kept = append(kept, it)
	}

	return append(kept, deferred...), nil
}
