package filter

import (
	"context"

	"github.com/rushteam/cinerec/core"
)

// ValidGenresFilter 是严格目录校验过滤器：影片的每个类型标签都必须能
// 归一化到规范类型，否则视为脏数据。
//
// 两种策略（Strict 开关）：
//   - Strict=true：发现未识别类型即返回 UNRECOGNIZED_GENRE 错误，中断链路
//     （目录数据校验的硬错误策略）
//   - Strict=false：静默过滤掉带未识别类型的影片（宽松策略）
type ValidGenresFilter struct {
	Strict bool
}

func (f *ValidGenresFilter) Name() string {
	return "filter.valid_genres"
}

func (f *ValidGenresFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	for _, g := range item.Genres {
		if core.IsValidGenre(g) {
			continue
		}
		if f.Strict {
			return true, core.NewDomainError(
				core.ModuleGenre,
				core.ErrorCodeUnrecognizedGenre,
				"item "+item.Title+" has unknown genre: "+g,
			)
		}
		return true, nil
	}
	return false, nil
}
