package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"turfbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const authCachePrefix = "auth:verdict:"

// FirebaseAuthMiddleware verifies the caller's Firebase ID token and exposes
// the stable user ID and email on the context. Verified verdicts are cached
// in Redis keyed by the token so a burst of taps does not re-verify on every
// request.
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		cacheKey := authCachePrefix + tokenString
		authCache := utils.GetAuthCacheClient()
		cacheEnabled := true
		if authCache == nil {
			log.Printf("WARNING: Auth cache client not available. Falling back to token verification.")
			cacheEnabled = false
		}

		// Cached verdict: "uid|email".
		if cacheEnabled {
			cached, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				parts := strings.SplitN(cached, "|", 2)
				if len(parts) == 2 && parts[0] != "" {
					c.Set("userID", parts[0])
					c.Set("userEmail", parts[1])
					c.Next()
					return
				}
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to token verification.", err)
			}
		}

		token, err := utils.AuthClient.VerifyIDToken(ctx, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  0,
			})
			return
		}

		email, _ := token.Claims["email"].(string)

		if cacheEnabled {
			// Cache no longer than the token's own lifetime.
			ttl := time.Until(time.Unix(token.Expires, 0))
			if ttl > 5*time.Minute {
				ttl = 5 * time.Minute
			}
			if ttl > 0 {
				_ = authCache.Set(ctx, cacheKey, token.UID+"|"+email, ttl).Err()
			}
		}

		c.Set("userID", token.UID)
		c.Set("userEmail", email)
		c.Next()
	}
}
