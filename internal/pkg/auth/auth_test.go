package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	token, err := v.Sign(42, time.Hour)
	require.NoError(t, err)

	memberID, err := v.MemberID(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), memberID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenVerifier("secret-a").Sign(42, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenVerifier("secret-b").MemberID(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token, err := v.Sign(42, -time.Minute)
	require.NoError(t, err)

	_, err = v.MemberID(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsEmpty(t *testing.T) {
	_, err := NewTokenVerifier("test-secret").MemberID("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func newAuthTestRouter(v *TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Middleware(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"memberId": MemberID(c)})
	})
	return r
}

func TestMiddlewareAcceptsBearerHeader(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	r := newAuthTestRouter(v)

	token, err := v.Sign(7, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memberId":7`)
}

func TestMiddlewareAcceptsQueryToken(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	r := newAuthTestRouter(v)

	token, err := v.Sign(7, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	r := newAuthTestRouter(NewTokenVerifier("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
