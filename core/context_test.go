package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rushteam/cinerec/pkg/utils"
)

func TestEffectivePreferences(t *testing.T) {
	user := NewUserProfile("alice", 30)
	user.PreferredGenres = []string{"Drama"}

	tests := []struct {
		name string
		rctx *RecommendContext
		want int
	}{
		{"请求偏好优先", &RecommendContext{User: user, Preferences: []string{"Action", "Sci-Fi"}}, 2},
		{"退回画像偏好", &RecommendContext{User: user}, 1},
		{"都为空", &RecommendContext{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rctx.EffectivePreferences(); len(got) != tt.want {
				t.Errorf("EffectivePreferences = %v, want %d 条", got, tt.want)
			}
		})
	}
}

func TestContextLabels(t *testing.T) {
	rctx := &RecommendContext{}
	rctx.PutLabel("scene", utils.Label{Value: "home", Source: "req"})
	rctx.PutLabel("scene", utils.Label{Value: "feed", Source: "infer"})

	lbl, ok := rctx.GetLabel("scene")
	if !ok {
		t.Fatal("标签应存在")
	}
	if lbl.Value != "home|feed" {
		t.Errorf("同名标签应合并: %q", lbl.Value)
	}

	if _, ok := rctx.GetLabel("absent"); ok {
		t.Error("不存在的标签不应命中")
	}
}

func TestUserCacheKey(t *testing.T) {
	u := NewUserProfile("alice", 30)
	if u.CacheKey() != "user:alice:30" {
		t.Errorf("CacheKey = %q", u.CacheKey())
	}
	// 同名不同龄是不同的缓存条目
	if NewUserProfile("alice", 31).CacheKey() == u.CacheKey() {
		t.Error("年龄不同缓存 key 必须不同")
	}
}

func TestDomainErrorHelpers(t *testing.T) {
	err := NewDomainError(ModuleEngine, ErrorCodeTimeout, "await deadline exceeded")

	if !IsTimeout(err) {
		t.Error("IsTimeout 应命中")
	}
	if IsTimeout(errors.New("plain")) {
		t.Error("普通错误不应命中")
	}

	// 包装后仍可识别
	wrapped := fmt.Errorf("run: %w", err)
	if !IsTimeout(wrapped) {
		t.Error("包装后的领域错误应仍可识别")
	}
	if GetDomainError(wrapped) == nil {
		t.Error("GetDomainError 应穿透包装")
	}
}
