package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/cinerec/core"
)

// HTTPEngine 通过 REST 端点调用外部排序引擎。
// 请求/响应契约与 ProcessEngine 完全一致，只是交接介质从文件换成 HTTP：
//   - POST {"preferredGenres": [...]} 到 Endpoint
//   - 响应体为 {"count": N, "ml_recommendations": [...]}
//
// Submit 在后台发起请求（非阻塞派发），Await 等待其完成。
type HTTPEngine struct {
	// Endpoint 服务端点，例如 "http://localhost:8501/rank"
	Endpoint string

	// Timeout 等待响应的上限，<=0 时默认 120s
	Timeout time.Duration

	httpClient *http.Client
}

// HTTPEngineOption 引擎配置选项
type HTTPEngineOption func(*HTTPEngine)

// WithHTTPTimeout 设置等待超时
func WithHTTPTimeout(d time.Duration) HTTPEngineOption {
	return func(e *HTTPEngine) { e.Timeout = d }
}

// NewHTTPEngine 创建一个 REST 引擎客户端。
func NewHTTPEngine(endpoint string, opts ...HTTPEngineOption) *HTTPEngine {
	e := &HTTPEngine{
		Endpoint: endpoint,
		Timeout:  core.Defaults.DefaultEngineTimeout(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.httpClient = &http.Client{Timeout: e.Timeout}
	return e
}

// httpHandle 标识一次在途的 HTTP 计算。
type httpHandle struct {
	done chan struct{}
	resp *core.EngineResponse // 在 close(done) 之前写入
	err  error
}

func (h *httpHandle) Done() <-chan struct{} { return h.done }

// Submit 在后台发起 HTTP 请求，立即返回句柄。
func (e *HTTPEngine) Submit(ctx context.Context, req *core.EngineRequest) (core.EngineHandle, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("encode engine request: %v", err))
	}

	h := &httpHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.resp, h.err = e.post(data)
	}()
	return h, nil
}

func (e *HTTPEngine) post(body []byte) (*core.EngineResponse, error) {
	httpReq, err := http.NewRequest(http.MethodPost, e.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("build engine request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("call engine %s: %v", e.Endpoint, err))
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("read engine response: %v", err))
	}
	// 状态码只观察成功/失败
	if httpResp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("engine returned status %d", httpResp.StatusCode))
	}
	return decodeResponse(data)
}

// Await 阻塞等待 HTTP 请求完成。
func (e *HTTPEngine) Await(ctx context.Context, handle core.EngineHandle) (*core.EngineResponse, error) {
	h, ok := handle.(*httpHandle)
	if !ok {
		return nil, fmt.Errorf("handle was not produced by HTTPEngine")
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = core.Defaults.DefaultEngineTimeout()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.done:
	case <-timer.C:
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeTimeout,
			fmt.Sprintf("engine did not respond within %s", timeout))
	case <-ctx.Done():
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeTimeout,
			fmt.Sprintf("await canceled: %v", ctx.Err()))
	}

	if h.err != nil {
		return nil, h.err
	}
	return h.resp, nil
}

func (e *HTTPEngine) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}

var _ core.RankingEngine = (*HTTPEngine)(nil)
