package middleware

import (
	"context"
	"strings"
	"wellness_backend/internal/config"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserEnsurer 首次访问时根据令牌创建用户
type UserEnsurer interface {
	Ensure(ctx context.Context, claims *util.Claims) (*model.User, error)
}

// bearerToken 只接受 Authorization 头，令牌不出现在 URL 中，避免被访问日志记录
func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware 校验身份提供方签发的令牌，并保证用户行存在
func AuthMiddleware(cfg config.AuthConfig, users UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWTSecret, cfg.Issuer)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := users.Ensure(c.Request.Context(), claims)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		// 角色以数据库为准，管理员由后台授予
		claims.Role = user.Role

		c.Set("user", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
