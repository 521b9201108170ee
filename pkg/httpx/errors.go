package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 通用错误消息
const (
	MsgServerError     = "Server error"
	MsgValidation      = "Validation failed"
	MsgTooManyRequests = "Too many requests"
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// APIError 对外暴露的HTTP错误
type APIError struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// BadRequest 400
func BadRequest(msg string, fields ...FieldError) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg, Errors: fields}
}

// Unauthorized 401
func Unauthorized(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden 403
func Forbidden(msg string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: msg}
}

// NotFound 404
func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

// TooManyRequests 429
func TooManyRequests() *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Message: MsgTooManyRequests}
}

// Internal 500，不泄露内部错误
func Internal() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: MsgServerError}
}

// AsAPIError 非APIError的错误统一视为500
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal()
}

// Fail 写出错误响应
func Fail(c *gin.Context, err error) {
	apiErr := AsAPIError(err)
	c.JSON(apiErr.Status, apiErr)
}

// Abort 中间件中终止请求并写出错误
func Abort(c *gin.Context, err error) {
	apiErr := AsAPIError(err)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
