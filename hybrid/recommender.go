package hybrid

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/rank"
)

// PreferenceSource 在请求文档没有偏好时提供兜底偏好集。
// feature.PreferenceResolver 实现此接口。
type PreferenceSource interface {
	Resolve(ctx context.Context, user *core.UserProfile, requested []string) []string
}

// Recommender 是混合推荐的编排器：一次运行内，本地规则排序与
// 外部引擎计算并发进行，外部结果为权威结果。
//
// 状态机（单次运行）：
//
//	Parse → CacheHit?(直接写出) → Dispatched(Submit + 本地排序并发)
//	      → Awaiting(唯一阻塞点) → Reconciling | Failed → Done(恰好写出一次)
//
// 失败语义：
//   - 引擎不可达 / 响应畸形 / 超时 ⇒ Failed 分支，输出文档仍然写出
//     （空推荐列表 + error 字符串），不向调用方抛错
//   - 输出文档本身写失败 ⇒ 致命，上抛 IO_FAILURE
//
// 并发契约：每次 Run 至多一个在途外部计算；并发 Run 必须使用
// 互不相同的请求/响应/输出路径（见 Config）。
type Recommender struct {
	// Engine 外部排序引擎（权威结果来源），必填
	Engine core.RankingEngine

	// Local 本地规则排序（诊断用途，结果不进输出文档），可选
	Local rank.Recommender

	// Prefs 偏好兜底来源（如 Feature Store），可选
	Prefs PreferenceSource

	// Cache 按用户缓存成功结果，可选
	Cache core.Store

	// Config 路径与默认值配置，必填
	Config *Config
}

// RunResult 是一次运行的结果。
type RunResult struct {
	// Output 最终输出文档（已写盘）
	Output *OutputDocument

	// Local 本地规则排序的结果，仅诊断用途
	Local []*core.Item

	// FromCache 本次结果是否来自缓存
	FromCache bool
}

// NewRecommender 创建混合推荐编排器
func NewRecommender(engine core.RankingEngine, cfg *Config) *Recommender {
	return &Recommender{
		Engine: engine,
		Local:  &rank.RuleBasedRecommender{TopN: cfg.LocalTopN},
		Config: cfg,
	}
}

// Run 执行一次完整的推荐运行。
// catalog 是本地排序的候选集，由调用方在内存中提供。
// 返回 error 仅限致命错误（请求/输出文档读写失败）；
// 引擎失败分支正常返回，失败原因记录在输出文档的 error 字段。
func (r *Recommender) Run(ctx context.Context, catalog []*core.Item) (*RunResult, error) {
	req, err := ReadRequest(r.Config.RequestPath)
	if err != nil {
		return nil, err
	}

	user := req.User.Profile()
	prefs := user.PreferredGenres
	if r.Prefs != nil {
		prefs = r.Prefs.Resolve(ctx, user, prefs)
	}

	// 缓存命中：直接写出缓存的输出文档，不触发外部计算
	if cached := r.lookupCache(ctx, user); cached != nil {
		if err := WriteOutput(r.Config.OutputPath, cached); err != nil {
			return nil, err
		}
		return &RunResult{Output: cached, FromCache: true}, nil
	}

	// 本地排序与外部计算并发；本地排序对任意输入不失败
	var local []*core.Item
	g, gctx := errgroup.WithContext(ctx)
	if r.Local != nil && len(catalog) > 0 {
		g.Go(func() error {
			items, lerr := r.Local.Recommend(gctx, prefs, catalog)
			if lerr == nil {
				local = items
			}
			return nil
		})
	}

	resp, engineErr := r.dispatch(ctx, prefs)
	_ = g.Wait()

	var out *OutputDocument
	if engineErr != nil {
		// Failed 分支：输出文档照常写出，失败原因进 error 字段
		out = &OutputDocument{
			Recommendations: []Recommendation{},
			Error:           engineErr.Error(),
		}
	} else {
		out = &OutputDocument{Recommendations: Reconcile(resp)}
		r.storeCache(ctx, user, out)
	}

	if err := WriteOutput(r.Config.OutputPath, out); err != nil {
		return nil, err
	}
	return &RunResult{Output: out, Local: local}, nil
}

// dispatch 派发外部计算并等待完成。偏好原样透传，包括未识别的类型。
func (r *Recommender) dispatch(ctx context.Context, prefs []string) (*core.EngineResponse, error) {
	if r.Engine == nil {
		return nil, fmt.Errorf("ranking engine is not configured")
	}

	handle, err := r.Engine.Submit(ctx, &core.EngineRequest{PreferredGenres: prefs})
	if err != nil {
		return nil, err
	}
	return r.Engine.Await(ctx, handle)
}

// lookupCache 查询用户级结果缓存，未命中或数据损坏返回 nil
func (r *Recommender) lookupCache(ctx context.Context, user *core.UserProfile) *OutputDocument {
	if r.Cache == nil || user.Name == "" {
		return nil
	}
	data, err := r.Cache.Get(ctx, user.CacheKey())
	if err != nil {
		return nil
	}
	var doc OutputDocument
	if json.Unmarshal(data, &doc) != nil {
		return nil
	}
	return &doc
}

// storeCache 缓存成功结果；缓存失败不影响主流程
func (r *Recommender) storeCache(ctx context.Context, user *core.UserProfile, doc *OutputDocument) {
	if r.Cache == nil || user.Name == "" {
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	_ = r.Cache.Set(ctx, user.CacheKey(), data, int(r.Config.CacheTTLDuration().Seconds()))
}
