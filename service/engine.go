package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rushteam/cinerec/core"
)

// 本包实现 core.RankingEngine：对接外部高精度排序引擎。
// 引擎是不透明协作方，本包只约定调用边界：
//   - 请求：{"preferredGenres": [...]}
//   - 响应：{"count": N, "ml_recommendations": [...]}
// 响应属于不可信输入，解析必须防御缺失字段与错误类型。

// EngineType 引擎接入方式
type EngineType string

const (
	EngineTypeProcess EngineType = "process" // 子进程 + 文件交接
	EngineTypeHTTP    EngineType = "http"    // REST 端点
)

// EngineConfig 引擎配置
type EngineConfig struct {
	// Type 引擎接入方式
	Type EngineType `yaml:"type" json:"type"`

	// Command 子进程引擎的可执行文件（process 类型）
	Command string `yaml:"command" json:"command"`

	// Args 传给子进程的参数（可选）
	Args []string `yaml:"args" json:"args"`

	// RequestPath / ResponsePath 是文件交接位置（process 类型）。
	// 注入而非全局：并发运行必须使用互不相同的位置。
	RequestPath  string `yaml:"request_path" json:"request_path"`
	ResponsePath string `yaml:"response_path" json:"response_path"`

	// Endpoint REST 端点（http 类型），例如 "http://localhost:8501/rank"
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Timeout 等待引擎完成的上限（秒），0 使用默认值
	Timeout int `yaml:"timeout" json:"timeout"`
}

// NewEngine 根据配置创建 RankingEngine 实例（工厂方法）。
func NewEngine(config *EngineConfig) (core.RankingEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("engine config is required")
	}

	switch config.Type {
	case EngineTypeProcess:
		opts := []ProcessEngineOption{}
		if config.Timeout > 0 {
			opts = append(opts, WithProcessTimeout(secs(config.Timeout)))
		}
		if len(config.Args) > 0 {
			opts = append(opts, WithProcessArgs(config.Args...))
		}
		return NewProcessEngine(config.Command, config.RequestPath, config.ResponsePath, opts...), nil

	case EngineTypeHTTP:
		opts := []HTTPEngineOption{}
		if config.Timeout > 0 {
			opts = append(opts, WithHTTPTimeout(secs(config.Timeout)))
		}
		return NewHTTPEngine(config.Endpoint, opts...), nil

	default:
		return nil, fmt.Errorf("unknown engine type: %s", config.Type)
	}
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }

// decodeResponse 防御性解析引擎响应。
// 规则：
//   - 响应必须是 JSON 对象
//   - ml_recommendations 字段缺失 ⇒ MALFORMED_RESPONSE（硬校验失败）
//   - 其余字段缺失/类型不符 ⇒ 条目级忽略，不中断
func decodeResponse(data []byte) (*core.EngineResponse, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeMalformedResponse,
			fmt.Sprintf("engine response is not a JSON object: %v", err))
	}

	raw, ok := probe["ml_recommendations"]
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeMalformedResponse,
			"engine response missing ml_recommendations")
	}

	var entries []core.EngineEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeMalformedResponse,
			fmt.Sprintf("decode ml_recommendations: %v", err))
	}

	resp := &core.EngineResponse{Entries: entries, Count: len(entries)}
	if rawCount, ok := probe["count"]; ok {
		var count int
		if err := json.Unmarshal(rawCount, &count); err == nil {
			resp.Count = count
		}
	}
	return resp, nil
}
