package handlers

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSWildcardWithoutCredentials(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/uploads/missing.zip", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSExplicitOriginWithCredentials(t *testing.T) {
	srv := newTestServerWithOrigins(t, []string{"https://app.example"})

	req := httptest.NewRequest(http.MethodGet, "/uploads/missing.zip", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/uploads/missing.zip", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestDownloadQuotesFilename(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, srv.store.Save(context.Background(), "final report;v2.zip", bytes.NewReader([]byte("PK"))))

	rec := srv.do(http.MethodGet, "/uploads/final%20report;v2.zip", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PK", rec.Body.String())
	assert.Equal(t, `attachment; filename="final report;v2.zip"`, rec.Header().Get("Content-Disposition"))

	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "final report;v2.zip", params["filename"])
}
