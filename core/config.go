package core

import "time"

// RecommendConfig 是推荐链路的默认值配置接口。
type RecommendConfig interface {
	// DefaultTopN 返回最终推荐条数上限
	DefaultTopN() int

	// DefaultEngineTimeout 返回等待外部引擎的超时时间
	DefaultEngineTimeout() time.Duration

	// DefaultCacheTTL 返回结果缓存的过期时间
	DefaultCacheTTL() time.Duration
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopN() int {
	return 10
}

func (c *DefaultRecommendConfig) DefaultEngineTimeout() time.Duration {
	return 120 * time.Second
}

func (c *DefaultRecommendConfig) DefaultCacheTTL() time.Duration {
	return 5 * time.Minute
}

// Defaults 是全局默认配置，rank/service/hybrid 的兜底默认值都取自这里。
var Defaults RecommendConfig = &DefaultRecommendConfig{}
