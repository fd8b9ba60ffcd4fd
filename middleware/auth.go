package middleware

import (
	"net/http"
	"strings"

	accountRepo "bookable/database/repository/account"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

// AccountIDKey is the context key under which the authenticated account ID is
// stored.
const AccountIDKey = "accountID"

// JWTAuthMiddleware protects owner endpoints. It validates the bearer token
// and confirms the account still exists before letting the request through.
func JWTAuthMiddleware(accounts accountRepo.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, err := utils.ExtractAccountIDFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		account, err := accounts.GetByID(accountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}
