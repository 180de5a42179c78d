package hybrid

import "github.com/rushteam/cinerec/core"

// Reconcile 将外部引擎响应转换为输出文档的推荐条目。
//
// 字段映射规则：
//   - id/title 原样保留
//   - genres 透传（缺失则省略）
//   - rating 取值优先级：vote_average > rating > 0.0（唯一有默认值的字段）
//   - ml_score/vote_count/popularity 仅在存在时转发，缺失即省略
func Reconcile(resp *core.EngineResponse) []Recommendation {
	if resp == nil || len(resp.Entries) == 0 {
		return []Recommendation{}
	}

	recs := make([]Recommendation, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		rec := Recommendation{
			ID:         e.ID,
			Title:      e.Title,
			Genres:     e.Genres,
			Rating:     entryRating(&e),
			MLScore:    e.MLScore,
			VoteCount:  e.VoteCount,
			Popularity: e.Popularity,
		}
		recs = append(recs, rec)
	}
	return recs
}

// entryRating 按 vote_average > rating > 0.0 的优先级取评分
func entryRating(e *core.EngineEntry) float64 {
	if e.VoteAverage != nil {
		return *e.VoteAverage
	}
	if e.Rating != nil {
		return *e.Rating
	}
	return 0.0
}
