package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"nightlife-portal/pkg/auth"
	tracecontext "nightlife-portal/pkg/context"
	"nightlife-portal/pkg/httpx"
)

// 鉴权失败消息
const (
	MsgNoToken         = "Not authorized, no token"
	MsgTokenFailed     = "Not authorized, token failed"
	MsgAccountNotFound = "Not authorized, account not found"
	MsgNotAdmin        = "Not authorized as an admin"
)

const principalKey = "portal.principal"

// AuthMiddleware 认证中间件配置
type AuthMiddleware struct {
	logger kratoslog.Logger
	jwt    *auth.JWTConfig
	finder auth.PrincipalFinder
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(logger kratoslog.Logger, jwt *auth.JWTConfig, finder auth.PrincipalFinder) *AuthMiddleware {
	return &AuthMiddleware{
		logger: logger,
		jwt:    jwt,
		finder: finder,
	}
}

// Protect 校验Bearer令牌并加载账号
func (am *AuthMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			httpx.Abort(c, httpx.Unauthorized(MsgNoToken))
			return
		}

		claims, err := auth.ParseToken(am.jwt, token)
		if err != nil {
			am.logger.Log(kratoslog.LevelWarn, "msg", "Invalid token", "error", err, "path", c.Request.URL.Path)
			httpx.Abort(c, httpx.Unauthorized(MsgTokenFailed))
			return
		}

		principal, err := am.finder.FindPrincipal(c.Request.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, auth.ErrPrincipalNotFound) {
				httpx.Abort(c, httpx.Unauthorized(MsgAccountNotFound))
				return
			}
			am.logger.Log(kratoslog.LevelError, "msg", "Load account failed", "account_id", claims.AccountID, "error", err)
			httpx.Abort(c, httpx.Internal())
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(tracecontext.WithAccount(c.Request.Context(), principal.ID, principal.Role))

		am.logger.Log(kratoslog.LevelDebug, "msg", "Account authenticated", "account_id", principal.ID, "path", c.Request.URL.Path)
		c.Next()
	}
}

// AdminOnly 要求管理员角色，必须放在Protect之后
func (am *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			httpx.Abort(c, httpx.Unauthorized(MsgNoToken))
			return
		}
		if !principal.IsAdmin() {
			am.logger.Log(kratoslog.LevelWarn, "msg", "Admin role required", "account_id", principal.ID, "path", c.Request.URL.Path)
			httpx.Abort(c, httpx.Forbidden(MsgNotAdmin))
			return
		}
		c.Next()
	}
}

// Admin Protect + AdminOnly
func (am *AuthMiddleware) Admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{am.Protect(), am.AdminOnly()}
}

// CurrentPrincipal 获取当前请求的账号
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := v.(*auth.Principal)
	return principal
}

// extractBearerToken 从Authorization头中提取token
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
