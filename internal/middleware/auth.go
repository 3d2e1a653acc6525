package middleware

import (
	"microblog-backend/config"
	"microblog-backend/internal/util"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenFromRequest 从 Authorization 头或 cookie 中提取令牌
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if token, err := c.Cookie("token"); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware 要求已认证身份。未携带或携带无效令牌时
// 重定向到登录入口，并通过 next 参数带上原始目标地址
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)

		userID, err := util.ValidateToken(token)
		if err != nil {
			util.Logger.Debug("认证失败，重定向到登录页",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))

			target := config.AppConfig.LoginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware 尝试解析身份但从不拒绝请求，
// 用于匿名可见但登录后带个性化信息（如关注状态）的页面
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userID, err := util.ValidateToken(token); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}
