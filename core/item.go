package core

import (
	"sort"

	"github.com/rushteam/cinerec/pkg/utils"
)

// Item 是推荐链路中的统一承载结构：影片元信息、分数、标签。
// ID/Title/Genres/Rating 构造后不再修改；Score 用于排序决策，
// Labels 用于解释与策略驱动。
type Item struct {
	ID     int64
	Title  string
	Genres []string // 原始类型标签；是否归一化由匹配方决定
	Rating float64  // 约定 0-10，不强制

	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id int64, title string, genres []string, rating float64) *Item {
	return &Item{
		ID:     id,
		Title:  title,
		Genres: genres,
		Rating: rating,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MatchGenres 统计该影片的类型标签中有多少个出现在 preferred 中。
// 按原始字符串精确匹配（集合成员判断，不按频次加权）。
func (it *Item) MatchGenres(preferred []string) int {
	if len(preferred) == 0 || len(it.Genres) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(preferred))
	for _, g := range preferred {
		set[g] = struct{}{}
	}
	n := 0
	for _, g := range it.Genres {
		if _, ok := set[g]; ok {
			n++
		}
	}
	return n
}

// Less 定义 Item 的自然序：Rating 降序，ID 升序兜底。
// 这是全序关系，保证排序结果可复现。
func (it *Item) Less(other *Item) bool {
	if it.Rating != other.Rating {
		return it.Rating > other.Rating
	}
	return it.ID < other.ID
}

// SortByScore 按 Score 降序排序，同分时退回自然序（Rating 降序、ID 升序）。
// 排序是确定性的：相同输入总是产出相同顺序。
func SortByScore(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Less(b)
	})
}
