package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/service"
	"github.com/kamesh6592-cell/zola/internal/service/identity"
)

// AuthMiddleware 认证中间件
// 提供有效 JWT 时按登录用户处理；否则按游客处理，
// 游客 ID 来自 X-Guest-ID 头（客户端自述），缺省时生成临时 ID
func AuthMiddleware(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			user, err := svc.Auth.ValidateToken(c.Request.Context(), token)
			if err == nil {
				c.Set("user", user)
				c.Set("user_id", user.ID)
				c.Set("authenticated", true)
				c.Next()
				return
			}
			// Token 无效，降级为游客
		}

		guestID := c.GetHeader("X-Guest-ID")
		if guestID == "" {
			guestID = uuid.New().String()
		}

		c.Set("user_id", guestID)
		c.Set("authenticated", false)
		c.Next()
	}
}

// RequireAuth 要求有效认证的中间件
func RequireAuth(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Missing or invalid Authorization header",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := svc.Auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("authenticated", true)
		c.Next()
	}
}

// GetCurrentUser 从上下文获取当前用户
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetAuthContext 从上下文构造身份解析所需的认证上下文
func GetAuthContext(c *gin.Context) identity.AuthContext {
	if user, ok := GetCurrentUser(c); ok {
		return identity.AuthContext{
			SubjectID:     user.ID,
			Email:         user.Email,
			Authenticated: true,
		}
	}

	subjectID, _ := c.Get("user_id")
	id, _ := subjectID.(string)
	return identity.AuthContext{SubjectID: id, Authenticated: false}
}
