package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口。
//
// 在 cinerec 中，Feature Store 承载用户的类型兴趣权重
// （feature view 如 "user_genre_prefs"，实体为用户名）：
// 当请求文档没有带偏好类型时，用兴趣权重兜底生成偏好集。
//
// 使用方式：
//   - NewGrpcClient：基于官方 Feast Go SDK 的 gRPC 实现
//   - 测试中可自行实现此接口注入假数据
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时推荐）
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["user_genre_prefs:action", "user_genre_prefs:drama"]
	//   - EntityRows: 实体行，例如 [{"user_name": "alice"}]
	//
	// 返回每个实体行对应的特征向量。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型：static（gRPC 静态 Token）
	Type string

	// Token Token（static auth）
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
