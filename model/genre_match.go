package model

// GenreMatch 实现了基于类型命中数的规则打分模型。
// 它是本地排序路径的唯一模型：无需训练，结果完全可解释。
//
// 打分公式：score = matches * MatchWeight + rating
//
// 约定：matches == 0 的影片不应进入打分（由排序 Node 预先排除），
// 因此分数恒为正，不存在 "rating 为 0 且命中 1 次" 与 "未命中" 的混淆。
type GenreMatch struct {
	// MatchWeight 是单次类型命中的权重，<=0 时使用默认值 2.0
	MatchWeight float64
}

// 特征 key 约定：由排序 Node 写入。
const (
	FeatureGenreMatches = "genre_matches" // 类型命中数
	FeatureRating       = "rating"        // 影片评分
)

func (m *GenreMatch) Name() string { return "genre_match" }

func (m *GenreMatch) Predict(features map[string]float64) (float64, error) {
	w := m.MatchWeight
	if w <= 0 {
		w = 2.0
	}
	return features[FeatureGenreMatches]*w + features[FeatureRating], nil
}
