package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gocarpool/internal/models"
	"gocarpool/internal/services"
	"gocarpool/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

// stubAuthService resolves a single known user.
type stubAuthService struct {
	user *models.User
}

func (s *stubAuthService) Register(context.Context, *services.RegisterRequest) (*services.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, *services.LoginRequest) (*services.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Refresh(context.Context, string) (*utils.TokenPair, error) {
	return nil, nil
}

func (s *stubAuthService) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, services.ErrUserNotFound
}

func newAuthRouter(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(auth, testSecret), func(c *gin.Context) {
		user := c.MustGet(ContextUserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{"name": user.Name})
	})
	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Dana", Email: "dana@example.com"}
	r := newAuthRouter(&stubAuthService{user: user})

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, testSecret)
	require.NoError(t, err)

	w := get(r, "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dana")
}

func TestAuthRequiredRejections(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "dana@example.com"}
	r := newAuthRouter(&stubAuthService{user: user})

	t.Run("missing header", func(t *testing.T) {
		w := get(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		w := get(r, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tokens, err := utils.GenerateTokenPair(user.ID, user.Email, "other-secret")
		require.NoError(t, err)
		w := get(r, "Bearer "+tokens.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted account", func(t *testing.T) {
		ghost := primitive.NewObjectID()
		tokens, err := utils.GenerateTokenPair(ghost, "ghost@example.com", testSecret)
		require.NoError(t, err)
		w := get(r, "Bearer "+tokens.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
