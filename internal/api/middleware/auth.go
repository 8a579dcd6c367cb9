package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// JWTAuth validates the bearer token and injects userID, companyID and role
// into the request context. Role here is a display/tagging concern; the
// approval engine re-checks eligibility on every decision regardless of
// what the token claims.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Invalid authorization format"})
			c.Abort()
			return
		}

		secret := viper.GetString("jwt.secret")
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Invalid token claims"})
			c.Abort()
			return
		}
		userID, _ := claims["user_id"].(string)
		companyID, _ := claims["company_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || companyID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "Invalid token claims"})
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Set("companyID", companyID)
		c.Set("role", role)

		c.Next()
	}
}

// RequireRole gates admin/manager-only routes on the token's role tag.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString("role")
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"code": 403, "msg": "Insufficient role"})
		c.Abort()
	}
}
