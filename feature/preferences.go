package feature

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/feast"
	"github.com/rushteam/cinerec/pkg/conv"
)

// PreferenceResolver 负责解析用户的偏好类型集。
//
// 解析顺序：
//  1. 请求文档自带的偏好类型（原样返回）
//  2. Feature Store 中的类型兴趣权重（feature view "user_genre_prefs"，
//     实体为用户名），取权重大于阈值的类型
//  3. 都没有时返回空集，由上层决定行为（本地排序产出空列表）
//
// 设计原则：
//   - 兜底数据只补充，不覆盖请求自带的偏好
//   - Feature Store 不可用时静默降级，不阻塞推荐主流程
type PreferenceResolver struct {
	// Client Feast 客户端，nil 时跳过兜底
	Client feast.Client

	// FeatureView 特征视图名称，默认 "user_genre_prefs"
	FeatureView string

	// EntityKey 实体键名称，默认 "user_name"
	EntityKey string

	// Threshold 兴趣权重阈值，大于该值的类型进入偏好集，默认 0.5
	Threshold float64

	// Store 可选的结果缓存
	Store core.Store

	// CacheTTL 缓存过期时间（秒），默认 300
	CacheTTL int
}

// ResolverOption 配置选项
type ResolverOption func(*PreferenceResolver)

// WithFeatureView 设置特征视图名称
func WithFeatureView(view string) ResolverOption {
	return func(r *PreferenceResolver) {
		r.FeatureView = view
	}
}

// WithThreshold 设置兴趣权重阈值
func WithThreshold(threshold float64) ResolverOption {
	return func(r *PreferenceResolver) {
		r.Threshold = threshold
	}
}

// WithStore 设置结果缓存
func WithStore(store core.Store, ttlSeconds int) ResolverOption {
	return func(r *PreferenceResolver) {
		r.Store = store
		r.CacheTTL = ttlSeconds
	}
}

// NewPreferenceResolver 创建偏好解析器
func NewPreferenceResolver(client feast.Client, opts ...ResolverOption) *PreferenceResolver {
	r := &PreferenceResolver{
		Client:      client,
		FeatureView: "user_genre_prefs",
		EntityKey:   "user_name",
		Threshold:   0.5,
		CacheTTL:    300,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve 解析用户的偏好类型集。
// 请求自带偏好时直接返回；否则尝试 Feature Store 兜底。
func (r *PreferenceResolver) Resolve(ctx context.Context, user *core.UserProfile, requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	if user == nil || user.Name == "" || r.Client == nil {
		return nil
	}

	cacheKey := "prefs:" + user.Name
	if r.Store != nil {
		if cached, err := r.Store.Get(ctx, cacheKey); err == nil {
			var prefs []string
			if json.Unmarshal(cached, &prefs) == nil {
				return prefs
			}
		}
	}

	prefs := r.fetchFromFeast(ctx, user)
	if r.Store != nil && len(prefs) > 0 {
		if data, err := json.Marshal(prefs); err == nil {
			_ = r.Store.Set(ctx, cacheKey, data, r.CacheTTL)
		}
	}
	return prefs
}

// fetchFromFeast 从 Feature Store 拉取类型兴趣权重并筛选偏好集，
// 同时把拉到的权重回填到 user.Interests。任何错误都降级为空集。
func (r *PreferenceResolver) fetchFromFeast(ctx context.Context, user *core.UserProfile) []string {
	features := make([]string, 0, len(core.AllGenres()))
	for _, g := range core.AllGenres() {
		features = append(features, r.featureName(g))
	}

	resp, err := r.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{r.EntityKey: user.Name}},
	})
	if err != nil || len(resp.FeatureVectors) == 0 {
		return nil
	}

	type weighted struct {
		genre  string
		weight float64
	}
	var picked []weighted
	values := resp.FeatureVectors[0].Values
	for _, g := range core.AllGenres() {
		raw, ok := values[r.featureName(g)]
		if !ok {
			continue
		}
		w, ok := conv.ToFloat64(raw)
		if !ok {
			continue
		}
		if user.Interests == nil {
			user.Interests = make(map[string]float64)
		}
		user.Interests[string(g)] = w
		if w > r.Threshold {
			picked = append(picked, weighted{genre: string(g), weight: w})
		}
	}

	// 按权重降序，权重相同时按类型名升序，保证结果稳定
	sort.Slice(picked, func(i, j int) bool {
		if picked[i].weight != picked[j].weight {
			return picked[i].weight > picked[j].weight
		}
		return picked[i].genre < picked[j].genre
	})

	prefs := make([]string, len(picked))
	for i, p := range picked {
		prefs[i] = p.genre
	}
	return prefs
}

// featureName 生成类型对应的特征名，例如 "user_genre_prefs:science_fiction"
func (r *PreferenceResolver) featureName(g core.Genre) string {
	slug := strings.ToLower(strings.ReplaceAll(string(g), " ", "_"))
	return fmt.Sprintf("%s:%s", r.FeatureView, slug)
}

