package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rushteam/cinerec/core"
)

func processPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "request.json"), filepath.Join(dir, "response.json")
}

func TestProcessEngineRoundTrip(t *testing.T) {
	reqPath, respPath := processPaths(t)

	// 用 sh 模拟外部引擎：读请求、写响应
	script := `cat ` + reqPath + ` > /dev/null && printf '%s' '{"count":1,"ml_recommendations":[{"id":603,"title":"The Matrix","vote_average":8.7}]}' > ` + respPath
	engine := NewProcessEngine("sh", reqPath, respPath, WithProcessArgs("-c", script))
	defer engine.Close()

	ctx := context.Background()
	handle, err := engine.Submit(ctx, &core.EngineRequest{PreferredGenres: []string{"Action", "Sci-Fi"}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// 请求文档必须在派发前写盘
	data, err := os.ReadFile(reqPath)
	if err != nil {
		t.Fatalf("请求文档应已写出: %v", err)
	}
	var req core.EngineRequest
	if err := json.Unmarshal(data, &req); err != nil {
		t.Fatalf("请求文档应为合法 JSON: %v", err)
	}
	if len(req.PreferredGenres) != 2 {
		t.Errorf("偏好应原样透传: %v", req.PreferredGenres)
	}

	resp, err := engine.Await(ctx, handle)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].ID != 603 {
		t.Errorf("响应解析错误: %+v", resp)
	}
}

func TestProcessEngineNonZeroExit(t *testing.T) {
	reqPath, respPath := processPaths(t)
	engine := NewProcessEngine("sh", reqPath, respPath, WithProcessArgs("-c", "exit 3"))
	defer engine.Close()

	ctx := context.Background()
	handle, err := engine.Submit(ctx, &core.EngineRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, err = engine.Await(ctx, handle)
	if !core.IsExternalUnavailable(err) {
		t.Errorf("非零退出码应为 EXTERNAL_UNAVAILABLE: %v", err)
	}
}

func TestProcessEngineNoResponseFile(t *testing.T) {
	reqPath, respPath := processPaths(t)
	engine := NewProcessEngine("sh", reqPath, respPath, WithProcessArgs("-c", "true"))
	defer engine.Close()

	ctx := context.Background()
	handle, err := engine.Submit(ctx, &core.EngineRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, err = engine.Await(ctx, handle)
	if !core.IsExternalUnavailable(err) {
		t.Errorf("无响应文件应为 EXTERNAL_UNAVAILABLE: %v", err)
	}
}

func TestProcessEngineDefaultTimeout(t *testing.T) {
	reqPath, respPath := processPaths(t)
	engine := NewProcessEngine("sh", reqPath, respPath)
	defer engine.Close()

	if engine.Timeout != core.Defaults.DefaultEngineTimeout() {
		t.Errorf("默认超时应取自全局默认配置: %v", engine.Timeout)
	}
}

func TestProcessEngineTimeout(t *testing.T) {
	reqPath, respPath := processPaths(t)
	engine := NewProcessEngine("sh", reqPath, respPath,
		WithProcessArgs("-c", "sleep 5"),
		WithProcessTimeout(100*time.Millisecond))
	defer engine.Close()

	ctx := context.Background()
	handle, err := engine.Submit(ctx, &core.EngineRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	start := time.Now()
	_, err = engine.Await(ctx, handle)
	if !core.IsTimeout(err) {
		t.Errorf("超时应为 TIMEOUT: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("超时应在限定时间内返回")
	}
}

func TestProcessEngineRemovesStaleResponse(t *testing.T) {
	reqPath, respPath := processPaths(t)
	if err := os.WriteFile(respPath, []byte(`{"ml_recommendations":[{"id":1,"title":"stale"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewProcessEngine("sh", reqPath, respPath, WithProcessArgs("-c", "true"))
	defer engine.Close()

	handle, err := engine.Submit(context.Background(), &core.EngineRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// 旧响应已被清除，本次运行没有新响应 ⇒ 不可用而非读到陈旧数据
	if _, err := engine.Await(context.Background(), handle); !core.IsExternalUnavailable(err) {
		t.Errorf("陈旧响应不得被当作本次结果: %v", err)
	}
}
