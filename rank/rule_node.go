package rank

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/model"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/utils"
)

// RuleNode 是规则排序 Node：按偏好类型命中数打分并确定性排序。
//
// 匹配纪律：按原始字符串做集合成员判断（raw-string discipline），
// 不做归一化——与外部引擎边界的 advisory 归一化是两套显式区分的纪律，
// 统一它们会改变可观测的推荐结果。
//
// 行为：
//   - matchCount == 0 的影片直接排除（不打分，分数 0 永不参与比较）
//   - 其余影片 score = matches*2.0 + rating（由 model.GenreMatch 计算）
//   - 按 Score 降序、自然序兜底的确定性排序
//   - 写入 labels：rank_model
type RuleNode struct {
	// Model 为空时使用默认 GenreMatch 模型
	Model model.RankModel
}

func (n *RuleNode) Name() string        { return "rank.rule" }
func (n *RuleNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *RuleNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	prefs := rctx.EffectivePreferences()
	if len(prefs) == 0 || len(items) == 0 {
		// 空偏好集不是错误：没有任何可匹配的影片
		return nil, nil
	}

	m := n.Model
	if m == nil {
		m = &model.GenreMatch{}
	}

	matched := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		matches := it.MatchGenres(prefs)
		if matches == 0 {
			continue
		}
		score, err := m.Predict(map[string]float64{
			model.FeatureGenreMatches: float64(matches),
			model.FeatureRating:       it.Rating,
		})
		if err != nil {
			return nil, err
		}
		it.Score = score
		it.PutLabel("rank_model", utils.Label{Value: m.Name(), Source: "rank"})
		matched = append(matched, it)
	}

	core.SortByScore(matched)
	return matched, nil
}
