package hybrid

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rushteam/cinerec/core"
)

func TestReadRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	raw := `{"user":{"name":"alice","age":30,"preferredGenres":["Action","Sci-Fi"]}}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadRequest(path)
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if doc.User.Name != "alice" || doc.User.Age != 30 {
		t.Errorf("用户信息解析错误: %+v", doc.User)
	}
	if len(doc.User.PreferredGenres) != 2 {
		t.Errorf("偏好解析错误: %v", doc.User.PreferredGenres)
	}
}

func TestReadRequestFailures(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadRequest(filepath.Join(dir, "missing.json")); !core.IsIOFailure(err) {
		t.Errorf("文件缺失应为 IO_FAILURE: %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRequest(bad); !core.IsIOFailure(err) {
		t.Errorf("JSON 损坏应为 IO_FAILURE: %v", err)
	}
}

func TestWriteOutputNormalizesNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")

	if err := WriteOutput(path, &OutputDocument{Error: "engine failed"}); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"recommendations": []`) {
		t.Errorf("recommendations 必须序列化为空数组而非 null: %s", data)
	}

	var doc OutputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("输出必须是合法 JSON: %v", err)
	}
	if doc.Error != "engine failed" {
		t.Errorf("Error = %q", doc.Error)
	}
}

func TestWriteOutputErrorOmittedOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")

	out := &OutputDocument{Recommendations: []Recommendation{{ID: 1, Title: "x", Rating: 7.0}}}
	if err := WriteOutput(path, out); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("成功分支不应出现 error 字段: %s", data)
	}
}

func TestRequestUserProfile(t *testing.T) {
	u := RequestUser{Name: "bob", Age: 25, PreferredGenres: []string{"Drama"}}
	p := u.Profile()
	if p.Name != "bob" || p.Age != 25 {
		t.Errorf("Profile = %+v", p)
	}
	if p.CacheKey() != "user:bob:25" {
		t.Errorf("CacheKey = %q", p.CacheKey())
	}
}
