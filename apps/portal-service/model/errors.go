package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID ID格式不合法，视同不存在
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// ValidationError 一个或多个字段校验失败
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// NewFieldError 单字段校验错误
func NewFieldError(field, tag, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message, Tag: tag}}}
}
