package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/middleware"
	"github.com/prashikshan/backend/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMw := middleware.NewAuthMiddleware(jwtService)
	router.GET("/protected", authMw.JWTAuth(), func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": middleware.RoleName(c)})
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp.Error.Code
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := newTestRouter(newTestJWTService(15 * time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "UNAUTHORIZED" {
		t.Errorf("expected code UNAUTHORIZED, got %q", code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := newTestRouter(newTestJWTService(15 * time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "INVALID_TOKEN" {
		t.Errorf("expected code INVALID_TOKEN, got %q", code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := newTestRouter(jwtService)

	access, _, err := jwtService.GenerateTokenPair(42, "Student")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "EXPIRED_TOKEN" {
		t.Errorf("expected code EXPIRED_TOKEN, got %q", code)
	}
}

func TestJWTAuth_ValidBearerToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := newTestRouter(jwtService)

	access, _, err := jwtService.GenerateTokenPair(123456789, "Admin")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		UserID int64  `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.UserID != 123456789 {
		t.Errorf("expected userId 123456789, got %d", body.UserID)
	}
	if body.Role != "Admin" {
		t.Errorf("expected role Admin, got %q", body.Role)
	}
}

func TestJWTAuth_CookieFallback(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := newTestRouter(jwtService)

	access, _, err := jwtService.GenerateTokenPair(777, "Student")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: access})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuth_MalformedHeaderIgnoresCookie(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := newTestRouter(jwtService)

	access, _, err := jwtService.GenerateTokenPair(777, "Student")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	// A present but malformed Authorization header wins over the cookie.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic something")
	req.AddCookie(&http.Cookie{Name: "token", Value: access})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
