package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

// AuthMiddleware authenticates requests against the external identity
// provider and attaches the account to the request context.
type AuthMiddleware struct {
	provider    repositories.IdentityProvider
	accountRepo repositories.AccountRepository
}

func NewAuthMiddleware(provider repositories.IdentityProvider, accountRepo repositories.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{
		provider:    provider,
		accountRepo: accountRepo,
	}
}

// Authenticate requires a valid bearer token.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing or malformed",
			})
			c.Abort()
			return
		}

		assertion, err := am.provider.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		account, err := am.accountFromAssertion(c.Request.Context(), assertion)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "failed to load account",
			})
			c.Abort()
			return
		}

		setAccountContext(c, account)
		c.Next()
	}
}

// OptionalAuthenticate attaches the account when a valid token is
// present and continues anonymously otherwise. The navigation guard
// uses this so public pages stay reachable.
func (am *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		assertion, err := am.provider.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		if account, err := am.accountFromAssertion(c.Request.Context(), assertion); err == nil {
			setAccountContext(c, account)
		}

		c.Next()
	}
}

// RequireRole checks that the authenticated account has one of the
// given roles. Must run after Authenticate.
func (am *AuthMiddleware) RequireRole(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		role, ok := value.(models.UserRole)
		if !exists || !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "role selection required",
			})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "insufficient role",
		})
		c.Abort()
	}
}

// accountFromAssertion loads the account, creating it on first login.
func (am *AuthMiddleware) accountFromAssertion(ctx context.Context, assertion *repositories.IdentityAssertion) (*models.User, error) {
	account, err := am.accountRepo.GetByID(ctx, assertion.Subject)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return am.accountRepo.CreateOrUpdate(ctx, assertion.AccountSeed())
}

func setAccountContext(c *gin.Context, account *models.User) {
	c.Set("user_id", account.ID)
	c.Set("user", account)
	c.Set("user_email", account.Email)
	if account.HasRole() {
		c.Set("user_role", *account.Role)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
