package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tracecontext "nightlife-portal/pkg/context"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

// OTelMiddleware OpenTelemetry中间件配置
type OTelMiddleware struct {
	serviceName string
}

// NewOTelMiddleware 创建OpenTelemetry中间件
func NewOTelMiddleware(serviceName string) *OTelMiddleware {
	return &OTelMiddleware{
		serviceName: serviceName,
	}
}

// GinMiddleware 返回Gin的OpenTelemetry中间件
func (m *OTelMiddleware) GinMiddleware() gin.HandlerFunc {
	return otelgin.Middleware(m.serviceName)
}

// RequestContext 在请求context中写入请求ID、客户端IP和服务名，需放在GinMiddleware之后
func (m *OTelMiddleware) RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tracecontext.WithRequestID(c.Request.Context(), c.GetHeader(RequestIDHeader))
		ctx = tracecontext.WithClientIP(ctx, c.ClientIP())
		ctx = tracecontext.WithServiceName(ctx, m.serviceName)

		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.String("http.client_ip", c.ClientIP()),
				attribute.String("http.user_agent", c.GetHeader("User-Agent")),
			)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, tracecontext.GetRequestID(ctx))
		c.Next()
	}
}
