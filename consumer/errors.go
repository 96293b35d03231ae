package consumer

import "fmt"

// StreamErrorCode 流消费错误码类型
type StreamErrorCode string

const (
	// 启动阶段错误：broker 不可达，进程不应进入 tick 循环
	ErrCodeStartupConnection StreamErrorCode = "STARTUP_CONNECTION_FAILED"

	// 单次拉取错误：本次 tick 放弃，下次 tick 继续重试
	ErrCodeFetchFailed StreamErrorCode = "FETCH_FAILED"

	// 载荷解码错误：消息不是合法 JSON，同样按单次 tick 吸收
	// 注意：载荷合法但缺少 message 字段不算错误，按空文本处理
	ErrCodeDecodeFailed StreamErrorCode = "DECODE_FAILED"

	// 源已关闭后继续拉取
	ErrCodeSourceClosed StreamErrorCode = "SOURCE_CLOSED"
)

// StreamError 流消费错误
type StreamError struct {
	Code    StreamErrorCode `json:"code"`
	Message string          `json:"message"`
	Cause   error           `json:"-"` // 原始错误，不参与JSON序列化
}

// Error 实现error接口
func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Unwrap
func (e *StreamError) Unwrap() error {
	return e.Cause
}

// IsCode 检查错误码是否匹配
func (e *StreamError) IsCode(code StreamErrorCode) bool {
	return e.Code == code
}

// NewStreamError 创建新的流消费错误
func NewStreamError(code StreamErrorCode, message string) *StreamError {
	return &StreamError{Code: code, Message: message}
}

// NewStreamErrorWithCause 创建带原因的流消费错误
func NewStreamErrorWithCause(code StreamErrorCode, message string, cause error) *StreamError {
	return &StreamError{Code: code, Message: message, Cause: cause}
}

// GetStreamError 获取StreamError，如果不是则返回nil
func GetStreamError(err error) *StreamError {
	if streamErr, ok := err.(*StreamError); ok {
		return streamErr
	}
	return nil
}

// IsErrorCode 检查错误是否为指定错误码
func IsErrorCode(err error, code StreamErrorCode) bool {
	if streamErr := GetStreamError(err); streamErr != nil {
		return streamErr.IsCode(code)
	}
	return false
}

// IsStartupError 是否为致命的启动错误
func IsStartupError(err error) bool {
	return IsErrorCode(err, ErrCodeStartupConnection)
}

// 预定义的常用错误
var (
	ErrSourceClosed = NewStreamError(ErrCodeSourceClosed, "source already closed")
)
