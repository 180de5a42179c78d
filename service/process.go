package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rushteam/cinerec/core"
)

// ProcessEngine 通过子进程 + 文件交接调用外部排序引擎。
//
// 交接协议：
//  1. Submit 把请求 JSON 写入 RequestPath，然后启动引擎进程（非阻塞派发）
//  2. 引擎自行读取请求、计算，并把响应写入 ResponsePath
//  3. Await 等待进程退出（唯一阻塞点），随后读取并校验响应文件
//
// 并发契约：
//   - 每次运行恰好一个在途计算；进程一旦启动不再取消
//   - 写请求 happens-before 启动进程，进程退出 happens-before 读响应，
//     因此单次运行内无需额外加锁
//   - RequestPath/ResponsePath 是注入配置：并发运行必须使用互不相同的位置，
//     否则文件交接会互相覆盖
//
// 失败语义：
//   - 进程无法启动 / 非零退出 / 响应文件缺失 ⇒ EXTERNAL_UNAVAILABLE
//   - 响应可读但缺少 ml_recommendations ⇒ MALFORMED_RESPONSE
//   - 等待超过 Timeout ⇒ TIMEOUT（进程继续运行，不被杀死）
type ProcessEngine struct {
	Command      string
	Args         []string
	RequestPath  string
	ResponsePath string

	// Timeout 等待进程完成的上限，<=0 时默认 120s
	Timeout time.Duration
}

// ProcessEngineOption 引擎配置选项
type ProcessEngineOption func(*ProcessEngine)

// WithProcessTimeout 设置等待超时
func WithProcessTimeout(d time.Duration) ProcessEngineOption {
	return func(e *ProcessEngine) { e.Timeout = d }
}

// WithProcessArgs 设置子进程参数
func WithProcessArgs(args ...string) ProcessEngineOption {
	return func(e *ProcessEngine) { e.Args = args }
}

// NewProcessEngine 创建一个子进程引擎。
func NewProcessEngine(command, requestPath, responsePath string, opts ...ProcessEngineOption) *ProcessEngine {
	e := &ProcessEngine{
		Command:      command,
		RequestPath:  requestPath,
		ResponsePath: responsePath,
		Timeout:      core.Defaults.DefaultEngineTimeout(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// processHandle 标识一次在途的子进程计算。
type processHandle struct {
	done   chan struct{}
	runErr error // 在 close(done) 之前写入，之后只读
}

func (h *processHandle) Done() <-chan struct{} { return h.done }

// Submit 写入请求文件并启动引擎进程。派发是非阻塞的：
// 返回后调用方可以继续做本地工作，直到 Await。
func (e *ProcessEngine) Submit(ctx context.Context, req *core.EngineRequest) (core.EngineHandle, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("encode engine request: %v", err))
	}
	if err := os.WriteFile(e.RequestPath, data, 0o644); err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("write engine request %s: %v", e.RequestPath, err))
	}

	// 清掉上一次运行的响应，避免把陈旧结果当作本次输出
	if err := os.Remove(e.ResponsePath); err != nil && !os.IsNotExist(err) {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("clear stale engine response %s: %v", e.ResponsePath, err))
	}

	// 不用 CommandContext：引擎一旦启动就不取消
	cmd := exec.Command(e.Command, e.Args...)
	if err := cmd.Start(); err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("start engine %s: %v", e.Command, err))
	}

	h := &processHandle{done: make(chan struct{})}
	go func() {
		h.runErr = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

// Await 阻塞等待进程退出，然后读取并校验响应文件。
// 退出状态只观察成功/失败，不做进一步解释。
func (e *ProcessEngine) Await(ctx context.Context, handle core.EngineHandle) (*core.EngineResponse, error) {
	h, ok := handle.(*processHandle)
	if !ok {
		return nil, fmt.Errorf("handle was not produced by ProcessEngine")
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
			fmt.Sprintf("engine did not complete within %s", timeout))
	case <-ctx.Done():
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeTimeout,
			fmt.Sprintf("await canceled: %v", ctx.Err()))
	}

	if h.runErr != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("engine exited with failure: %v", h.runErr))
	}

	data, err := os.ReadFile(e.ResponsePath)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeExternalUnavail,
			fmt.Sprintf("read engine response %s: %v", e.ResponsePath, err))
	}
	return decodeResponse(data)
}

func (e *ProcessEngine) Close() error { return nil }

var _ core.RankingEngine = (*ProcessEngine)(nil)
