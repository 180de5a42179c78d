package core

import "context"

// RankingEngine 是外部高精度排序引擎的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（service）实现
//   - 引擎是不透明能力（capability），不是类型层次：
//     Submit 派发一次计算，Await 等待其完成并取回响应
//   - 编排器只依赖此接口，测试时可注入假实现而无需真实子进程
//
// 并发契约：
//   - 每次 Pipeline 运行最多一个在途计算
//   - Submit 是非阻塞派发；派发后不取消
//   - Await 是唯一的阻塞点；返回后响应保证完整（无部分读取路径）
//
// 实现：
//   - service.ProcessEngine：子进程 + 文件交接
//   - service.HTTPEngine：REST 端点
type RankingEngine interface {
	// Submit 派发一次排序计算，立即返回句柄
	Submit(ctx context.Context, req *EngineRequest) (EngineHandle, error)

	// Await 阻塞等待计算完成，读取并校验响应
	Await(ctx context.Context, h EngineHandle) (*EngineResponse, error)

	// Close 释放资源
	Close() error
}

// EngineHandle 标识一次在途的外部计算。对调用方不透明。
type EngineHandle interface {
	// Done 返回完成信号通道（计算结束即关闭，无论成败）
	Done() <-chan struct{}
}

// EngineRequest 是写往外部引擎的请求载荷。
type EngineRequest struct {
	// PreferredGenres 原样透传（包括未识别的类型字符串）
	PreferredGenres []string `json:"preferredGenres"`
}

// EngineResponse 是外部引擎的响应。响应属于不可信输入：
// 所有可选字段以指针承载，缺失即为 nil，读取方必须判空。
type EngineResponse struct {
	Count   int           `json:"count"`
	Entries []EngineEntry `json:"ml_recommendations"`
}

// EngineEntry 是响应中的单条推荐。
// ID/Title 必备；其余字段可选（缺失不填默认值，由 reconcile 决定兜底）。
type EngineEntry struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	MLScore     *float64 `json:"ml_score,omitempty"`
	VoteCount   *float64 `json:"vote_count,omitempty"`
	Popularity  *float64 `json:"popularity,omitempty"`
}
