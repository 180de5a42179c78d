package hybrid

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rushteam/cinerec/core"
)

// RequestDocument 是一次推荐运行的输入文档。
//
// 格式：
//
//	{"user": {"name": "alice", "age": 30, "preferredGenres": ["Action", "Sci-Fi"]}}
type RequestDocument struct {
	User RequestUser `json:"user"`
}

// RequestUser 输入文档中的用户信息
type RequestUser struct {
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	PreferredGenres []string `json:"preferredGenres"`
}

// Profile 将请求用户转换为领域层的用户画像
func (u *RequestUser) Profile() *core.UserProfile {
	user := core.NewUserProfile(u.Name, u.Age)
	user.PreferredGenres = append([]string(nil), u.PreferredGenres...)
	return user
}

// OutputDocument 是一次推荐运行的最终输出文档。
//
// 不变式：无论运行走哪条分支（成功、引擎失败、响应畸形、超时），
// 每次运行都恰好写出一次完整合法的输出文档；Recommendations 始终存在
// （可为空），Error 仅在失败分支出现。
type OutputDocument struct {
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}

// Recommendation 输出文档中的单条推荐。
// 可选字段缺失时不写默认值（omitempty），Rating 例外：缺失兜底 0.0。
type Recommendation struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Genres     []string `json:"genres,omitempty"`
	Rating     float64  `json:"rating"`
	MLScore    *float64 `json:"ml_score,omitempty"`
	VoteCount  *float64 `json:"vote_count,omitempty"`
	Popularity *float64 `json:"popularity,omitempty"`
}

// ReadRequest 从指定路径读取并解析请求文档。
// 读取或解析失败都是致命错误（IO_FAILURE），直接上抛给调用方。
func ReadRequest(path string) (*RequestDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDocument, core.ErrorCodeIOFailure,
			fmt.Sprintf("read request document: %v", err))
	}

	var doc RequestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, core.NewDomainError(core.ModuleDocument, core.ErrorCodeIOFailure,
			fmt.Sprintf("parse request document: %v", err))
	}
	return &doc, nil
}

// WriteOutput 将输出文档写到指定路径，覆盖旧文件。
// 写入失败是致命错误（IO_FAILURE）：输出边界没有备用位置可以报告。
func WriteOutput(path string, doc *OutputDocument) error {
	if doc.Recommendations == nil {
		doc.Recommendations = []Recommendation{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return core.NewDomainError(core.ModuleDocument, core.ErrorCodeIOFailure,
			fmt.Sprintf("encode output document: %v", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return core.NewDomainError(core.ModuleDocument, core.ErrorCodeIOFailure,
			fmt.Sprintf("write output document: %v", err))
	}
	return nil
}
