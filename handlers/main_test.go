package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelancehub/database"
	"freelancehub/events"
	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services"
	"freelancehub/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router http.Handler
	authn  *middleware.Authenticator
	store  storage.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithOrigins(t, []string{"*"})
}

func newTestServerWithOrigins(t *testing.T, origins []string) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	authn := middleware.NewAuthenticator("test-secret", time.Hour, db)
	router := NewRouter(RouterConfig{
		Services:       services.New(db, store, events.NewLogPublisher(nil)),
		Authenticator:  authn,
		Store:          store,
		AuthLimiter:    middleware.NewMemoryLimiter(100, time.Minute),
		UploadMaxBytes: 1 << 20,
		CORSOrigins:    origins,
	})

	return &testServer{t: t, db: db, router: router, authn: authn, store: store}
}

// login creates a user with role and returns a bearer token for it.
func (s *testServer) login(name string, role models.Role) (*models.User, string) {
	s.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(s.t, err)

	user := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(s.t, s.db.Create(user).Error)

	token, err := s.authn.GenerateToken(user)
	require.NoError(s.t, err)
	return user, token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(path, token, filename string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(s.t, err)
		part.Write(content)
	} else {
		require.NoError(s.t, mw.WriteField("note", "no file"))
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rec).Message
}
