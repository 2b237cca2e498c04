package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/config"
	"restaurant-api/models"
)

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthRequired()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func get(r *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Email: "ama@example.com", Role: models.RoleAdmin}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	w := get(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-token").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Basic abc123").Code)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(protectedRouter(), "Bearer "+token).Code)
}

func TestRoleRequired(t *testing.T) {
	r := protectedRouter(RoleRequired(models.RoleAdmin, models.RoleRider))

	riderToken, err := GenerateToken(&models.User{ID: 1, Role: models.RoleRider})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+riderToken).Code)

	userToken, err := GenerateToken(&models.User{ID: 2, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+userToken).Code)
}
