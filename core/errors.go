package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 类型归一化：UNRECOGNIZED_GENRE
//   - 外部排序引擎：EXTERNAL_UNAVAILABLE, MALFORMED_RESPONSE, TIMEOUT
//   - 文档边界读写：IO_FAILURE
type DomainError struct {
	Code    string // 错误代码（如 "UNRECOGNIZED_GENRE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "genre", "engine", "document"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError（穿透 %w 包装），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeUnrecognizedGenre = "UNRECOGNIZED_GENRE" // 无法归一化的类型字符串
	ErrorCodeExternalUnavail   = "EXTERNAL_UNAVAILABLE" // 外部引擎不可达或无响应
	ErrorCodeMalformedResponse = "MALFORMED_RESPONSE"   // 响应可读但缺少必要结构
	ErrorCodeIOFailure         = "IO_FAILURE"           // 请求/输出文档读写失败（致命）
	ErrorCodeTimeout           = "TIMEOUT"              // 等待外部引擎超时
	ErrorCodeNotFound          = "NOT_FOUND"            // 资源不存在（Store）
)

// 模块名称常量
const (
	ModuleGenre    = "genre"    // 类型归一化模块
	ModuleEngine   = "engine"   // 外部排序引擎模块
	ModuleDocument = "document" // 请求/输出文档模块
	ModuleStore    = "store"    // 存储模块
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsUnrecognizedGenre 检查错误是否为 UNRECOGNIZED_GENRE
func IsUnrecognizedGenre(err error) bool { return hasCode(err, ErrorCodeUnrecognizedGenre) }

// IsExternalUnavailable 检查错误是否为 EXTERNAL_UNAVAILABLE
func IsExternalUnavailable(err error) bool { return hasCode(err, ErrorCodeExternalUnavail) }

// IsMalformedResponse 检查错误是否为 MALFORMED_RESPONSE
func IsMalformedResponse(err error) bool { return hasCode(err, ErrorCodeMalformedResponse) }

// IsIOFailure 检查错误是否为 IO_FAILURE
func IsIOFailure(err error) bool { return hasCode(err, ErrorCodeIOFailure) }

// IsTimeout 检查错误是否为 TIMEOUT
func IsTimeout(err error) bool { return hasCode(err, ErrorCodeTimeout) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }
