package core

import (
	"strconv"
	"time"
)

// UserProfile 是用户画像的核心抽象。
//
// 它不是某一个 Node，而是：
//   - 被所有 Node 共享
//   - 驱动本地排序与外部引擎请求的组装
//   - 可以被 Label 打标、回写、持续演进
//
// 设计要点：
//  维度          作用
//  静态属性      展示 / 缓存 key
//  偏好类型      本地规则排序 + 外部引擎请求
//  兴趣权重      偏好缺省时的补齐（Feature Store）
type UserProfile struct {
	// 静态属性
	Name string
	Age  int

	// PreferredGenres 是用户声明的偏好类型（PreferenceSet）。
	// 有序、不去重；保留调用方原始字符串，归一化只在需要处做（advisory）。
	PreferredGenres []string

	// Interests 是类型兴趣权重（key: 类型名，value: 0-1 权重），
	// 由 feature.PreferenceResolver 从 Feature Store 回填，
	// 用于偏好缺省时的兜底。
	Interests map[string]float64

	// 元数据
	UpdateTime time.Time // 最后更新时间
}

// NewUserProfile 创建一个新的用户画像。
func NewUserProfile(name string, age int) *UserProfile {
	return &UserProfile{
		Name:            name,
		Age:             age,
		PreferredGenres: make([]string, 0),
		Interests:       make(map[string]float64),
		UpdateTime:      time.Now(),
	}
}

// CacheKey 返回该用户推荐结果的缓存 key（粒度：名字+年龄）。
func (u *UserProfile) CacheKey() string {
	return "user:" + u.Name + ":" + strconv.Itoa(u.Age)
}
