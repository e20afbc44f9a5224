package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelancehub/database"
	"freelancehub/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username:     string(role) + "-user",
		Email:        string(role) + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(user.ID))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthenticator("secret", time.Hour, nil)
	user := &models.User{ID: "user-1", Role: models.RoleBuyer}

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleBuyer, claims.Role)

	_, err = NewAuthenticator("other", time.Hour, nil).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	auth := NewAuthenticator("secret", -time.Minute, nil)

	token, err := auth.GenerateToken(&models.User{ID: "user-1", Role: models.RoleSolver})
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	auth := NewAuthenticator("secret", time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: "user-1", Role: models.RoleAdmin})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(signed)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthenticator("secret", time.Hour, db)
	buyer := createUser(t, db, models.RoleBuyer)

	token, err := auth.GenerateToken(buyer)
	require.NoError(t, err)

	handler := auth.Middleware(http.HandlerFunc(okHandler))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token, authorization denied", decodeMessage(t, rec))
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, buyer.ID, rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token is not valid", decodeMessage(t, rec))
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := &models.User{ID: "00000000-0000-0000-0000-000000000000", Role: models.RoleBuyer}
		ghostToken, err := auth.GenerateToken(ghost)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+ghostToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleAdmin, models.RoleBuyer)(http.HandlerFunc(okHandler))

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"allowed role", &models.User{ID: "a", Role: models.RoleBuyer}, http.StatusOK},
		{"other role", &models.User{ID: "b", Role: models.RoleSolver}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
