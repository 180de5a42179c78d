package hybrid

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/service"
)

// Config 是混合推荐编排器的配置。
//
// 文件路径全部显式注入，不使用全局硬编码路径：
// 并发部署时每次运行配置独立的请求/响应/输出位置即可互不干扰。
//
// YAML 示例：
//
//	request_path: data/request.json
//	output_path: data/output.json
//	local_top_n: 10
//	cache_ttl: 300
//	engine:
//	  type: process
//	  command: python3
//	  args: ["ml/recommend.py"]
//	  request_path: data/ml_request.json
//	  response_path: data/ml_response.json
//	  timeout: 120
type Config struct {
	// RequestPath 请求文档路径
	RequestPath string `yaml:"request_path" json:"request_path"`

	// OutputPath 输出文档路径
	OutputPath string `yaml:"output_path" json:"output_path"`

	// LocalTopN 本地规则排序的条数上限，<= 0 时使用默认值 10
	LocalTopN int `yaml:"local_top_n" json:"local_top_n"`

	// CacheTTL 结果缓存过期秒数，<= 0 时使用默认值 300
	CacheTTL int `yaml:"cache_ttl" json:"cache_ttl"`

	// Engine 外部引擎配置
	Engine service.EngineConfig `yaml:"engine" json:"engine"`
}

// LoadConfig 从 YAML 文件加载编排配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hybrid config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse hybrid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置的必填项
func (c *Config) Validate() error {
	if c.RequestPath == "" {
		return fmt.Errorf("hybrid config: request_path is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("hybrid config: output_path is required")
	}
	return nil
}

// CacheTTLDuration 返回缓存过期时间，CacheTTL <= 0 时取全局默认值
func (c *Config) CacheTTLDuration() time.Duration {
	if c.CacheTTL <= 0 {
		return core.Defaults.DefaultCacheTTL()
	}
	return time.Duration(c.CacheTTL) * time.Second
}
