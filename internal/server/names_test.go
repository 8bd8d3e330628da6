package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultimattt/internal/config"
	"ultimattt/internal/hub"
	"ultimattt/internal/memory"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := hub.NewHub(memory.NewFileStore(filepath.Join(t.TempDir(), "mem.json")), hub.Options{})
	go h.Run()
	t.Cleanup(h.Stop)
	return NewServer(h, cfg)
}

func getNames(t *testing.T, s *Server) []string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/names", nil)
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var names []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	return names
}

func TestHandleNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Niko  \n\nRoman\n\tPacker\n\n"), 0o644))

	s := newTestServer(t, &config.Config{NamesFile: path})
	assert.Equal(t, []string{"Niko", "Roman", "Packer"}, getNames(t, s))
}

func TestHandleNamesMissingFileFallsBack(t *testing.T) {
	s := newTestServer(t, &config.Config{NamesFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Equal(t, defaultNames, getNames(t, s))
}

func TestHandleNamesEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(" \n\n \n"), 0o644))

	s := newTestServer(t, &config.Config{NamesFile: path})
	assert.Equal(t, defaultNames, getNames(t, s))
}

// The file is re-read per request: edits show up without a restart.
func TestHandleNamesReloadsPerRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("First\n"), 0o644))

	s := newTestServer(t, &config.Config{NamesFile: path})
	assert.Equal(t, []string{"First"}, getNames(t, s))

	require.NoError(t, os.WriteFile(path, []byte("Second\n"), 0o644))
	assert.Equal(t, []string{"Second"}, getNames(t, s))
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleRoomsEmpty(t *testing.T) {
	s := newTestServer(t, &config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
