package core

import "github.com/rushteam/cinerec/pkg/utils"

// RecommendContext 承载用户/偏好/实时信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// User 是强类型用户画像
	User *UserProfile

	// Preferences 是本次请求的偏好类型集（PreferenceSet）。
	// 未识别的类型字符串原样保留：归一化只是 advisory，
	// 不在外部引擎拿到它之前丢弃用户意图。
	Preferences []string

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device_type、scene 等）
	Params map[string]any
}

// EffectivePreferences 返回本次生效的偏好集：
// 优先使用 Preferences；为空时退回画像中的 PreferredGenres。
func (rctx *RecommendContext) EffectivePreferences() []string {
	if len(rctx.Preferences) > 0 {
		return rctx.Preferences
	}
	if rctx.User != nil {
		return rctx.User.PreferredGenres
	}
	return nil
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
