package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvenhancer-backend/internal/shared/auth"
)

func identityEchoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth())
	router.POST("/api/v1/enhance", func(c *gin.Context) {
		id := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"userId":        id.UserID,
			"guest":         id.Guest,
			"emailVerified": id.EmailVerified,
		})
	})
	return router
}

func TestAuthAcceptsValidJWT(t *testing.T) {
	token, err := auth.SignJWT(auth.Claims{Sub: "google:42", Email: "a@b.c", EmailVerified: true})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	router := identityEchoRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enhance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestAuthAcceptsGuestHeader(t *testing.T) {
	router := identityEchoRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enhance", nil)
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	router := identityEchoRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enhance", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	router := identityEchoRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enhance", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := identityEchoRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/enhance", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
