package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"carrental/internal/models"
	"carrental/internal/utils"
)

const tokenTTL = 24 * time.Hour

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken issues a 24-hour bearer token for the user.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a signed token string.
func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
}

// RequireAuth ensures a valid bearer token is present and stores the
// principal's claims in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortErrorResponse(c, http.StatusUnauthorized, "Access token required", "No token provided")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := ValidateToken(tokenString)
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.AbortErrorResponse(c, http.StatusUnauthorized, "Token expired", "Please login again")
				return
			}
			utils.AbortErrorResponse(c, http.StatusForbidden, "Invalid token", "Token verification failed")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.AbortErrorResponse(c, http.StatusForbidden, "Invalid token", "Token verification failed")
			return
		}

		// Store claims in context for downstream handlers
		c.Set("id", claims["id"])
		c.Set("username", claims["username"])
		c.Set("email", claims["email"])
		c.Set("role", claims["role"])

		c.Next()
	}
}

// RequireAdmin allows only admin principals past. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleIfc, exists := c.Get("role")
		if !exists {
			utils.AbortErrorResponse(c, http.StatusUnauthorized, "Authentication required", "Please login first")
			return
		}
		if role, ok := roleIfc.(string); !ok || role != "admin" {
			utils.AbortErrorResponse(c, http.StatusForbidden, "Admin access required", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireOwnerOrAdmin allows the resource's owning user or any admin. The
// named URL parameter carries the resource's user ID. Must run after
// RequireAuth.
func RequireOwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleIfc, exists := c.Get("role")
		if !exists {
			utils.AbortErrorResponse(c, http.StatusUnauthorized, "Authentication required", "Please login first")
			return
		}
		if role, ok := roleIfc.(string); ok && role == "admin" {
			c.Next()
			return
		}

		resourceUserID, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil || CurrentUserID(c) != uint(resourceUserID) {
			utils.AbortErrorResponse(c, http.StatusForbidden, "Access denied", "You can only access your own data")
			return
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user's ID from the context claims.
// JSON numbers decode as float64 in MapClaims.
func CurrentUserID(c *gin.Context) uint {
	idIfc, exists := c.Get("id")
	if !exists {
		return 0
	}
	id, ok := idIfc.(float64)
	if !ok {
		return 0
	}
	return uint(id)
}
