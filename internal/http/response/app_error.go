package response

import "github.com/gin-gonic/gin"

// AppError 处理器错误：业务码、文案键、本地化文案与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Key
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Severe 服务端故障（存储不可用、内部错误）按 error 级别记录，其余按 warn
func (e *AppError) Severe() bool {
	return e != nil && e.Code >= CodeInternal
}

// WrapError 包装错误，key 为 i18n 文案键，自定义文案时可为空
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}

// Fail 按 AppError 输出统一错误响应
func Fail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		Error(c, CodeInternal, "internal error")
		return
	}
	Error(c, appErr.Code, appErr.Message)
}
