package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse 只带消息的响应体
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteObject 写出JSON响应，err不为nil时按错误分类输出
func WriteObject(c *gin.Context, obj interface{}, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// OK 200
func OK(c *gin.Context, obj interface{}) {
	c.JSON(http.StatusOK, obj)
}

// Created 201
func Created(c *gin.Context, obj interface{}) {
	c.JSON(http.StatusCreated, obj)
}

// Message 200 + {message}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
