package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, "nexkeep"), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		fromCtx, _ := UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctx": fromCtx})
	})
	return r
}

func call(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := utils.GenerateJWT("u1", testSecret, time.Hour, "nexkeep")
	require.NoError(t, err)

	w := call(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","ctx":"u1"}`, w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired, err := utils.GenerateJWT("u1", testSecret, -time.Minute, "nexkeep")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWT("u1", testSecret, time.Hour, "someone-else")
	require.NoError(t, err)
	wrongKey, err := utils.GenerateJWT("u1", "other-secret", time.Hour, "nexkeep")
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		msg    string
	}{
		"missing":      {"", "Authorization header required"},
		"not bearer":   {"Basic abc", "Authorization header format must be Bearer {token}"},
		"expired":      {"Bearer " + expired, "Token has expired"},
		"wrong issuer": {"Bearer " + otherIssuer, "Invalid token"},
		"wrong key":    {"Bearer " + wrongKey, "Invalid token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := call(t, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.msg+`"}`, w.Body.String())
		})
	}
}
