package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/votann/ask-search-be/types"
	"github.com/votann/ask-search-be/utils"
)

const UserClaimsKey = "user_claims"

// AuthMiddleware validates the bearer token and stores the claims in the
// gin context under UserClaimsKey.
func AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
			Error: "Authorization header is required",
		})
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
			Error: "Authorization header format must be Bearer {token}",
		})
		return
	}

	claims, err := utils.ParseUserToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
			Error: "Invalid token",
		})
		return
	}

	c.Set(UserClaimsKey, claims)
	c.Next()
}

// UserClaims pulls the authenticated claims back out of the context.
func UserClaims(c *gin.Context) (*utils.UserClaims, bool) {
	value, exists := c.Get(UserClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.UserClaims)
	return claims, ok
}
