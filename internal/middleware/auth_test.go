package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"carrental/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser(role string) models.User {
	u := models.User{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     role,
	}
	u.ID = 42
	return u
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	tokenStr, err := GenerateToken(testUser("customer"))
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	token, err := ValidateToken(tokenStr)
	if err != nil || !token.Valid {
		t.Fatalf("ValidateToken() error: %v valid: %v", err, token != nil && token.Valid)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if got := uint(claims["id"].(float64)); got != 42 {
		t.Errorf("id claim = %d, want 42", got)
	}
	if claims["username"] != "jdoe" || claims["email"] != "jdoe@example.com" || claims["role"] != "customer" {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage")
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       float64(42),
		"username": "jdoe",
		"email":    "jdoe@example.com",
		"role":     "customer",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}
	return signed
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c)})
	})
	r.GET("/admin", RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/users/:id", RequireAuth(), RequireOwnerOrAdmin("id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := authRouter()

	t.Run("missing header", func(t *testing.T) {
		if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if w := doGet(r, "/me", "garbage"); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		if w := doGet(r, "/me", expiredToken(t)); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, _ := GenerateToken(testUser("customer"))
		w := doGet(r, "/me", token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	r := authRouter()

	customerToken, _ := GenerateToken(testUser("customer"))
	if w := doGet(r, "/admin", customerToken); w.Code != http.StatusForbidden {
		t.Errorf("customer status = %d, want 403", w.Code)
	}

	adminToken, _ := GenerateToken(testUser("admin"))
	if w := doGet(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	r := authRouter()

	customerToken, _ := GenerateToken(testUser("customer")) // id 42
	adminToken, _ := GenerateToken(testUser("admin"))

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"owner reads own resource", "/users/42", customerToken, http.StatusOK},
		{"owner blocked from other resource", "/users/7", customerToken, http.StatusForbidden},
		{"admin reads any resource", "/users/7", adminToken, http.StatusOK},
		{"malformed id param", "/users/abc", customerToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doGet(r, tt.path, tt.token); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
