package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2r72/fake-api/cmd/fake-api/handlers"
	"github.com/r2r72/fake-api/internal/service/catalog"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig([]string{"-env-file", ""}, lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Addr:            ":8080",
		ShutdownTimeout: 30 * time.Second,
		Environment:     "dev",
	}, cfg)
}

func TestParseConfig_Environment(t *testing.T) {
	cfg, err := parseConfig([]string{"-env-file", ""}, lookupMap(map[string]string{
		"APP_ENV":        "staging",
		"PORT":           "9090",
		"CATALOG_DB_URL": "postgres://catalog",
	}))
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://catalog", cfg.DBURL)
}

func TestParseConfig_FlagsWin(t *testing.T) {
	cfg, err := parseConfig([]string{"-env-file", "", "-addr", "127.0.0.1:7000", "-db-url", "postgres://flag"},
		lookupMap(map[string]string{"PORT": "9090", "CATALOG_DB_URL": "postgres://env"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "postgres://flag", cfg.DBURL)
}

func TestParseConfig_BadFlag(t *testing.T) {
	_, err := parseConfig([]string{"-shutdown-timeout", "soon"}, lookupMap(nil))
	assert.Error(t, err)
}

func TestParseConfig_MalformedEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOO BAR BAZ\n"), 0o644))

	_, err := parseConfig([]string{"-env-file", path}, lookupMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestOpenCatalog_BadDBURL(t *testing.T) {
	_, err := openCatalog(t.Context(), Config{DBURL: "postgres://localhost:5432/catalog?pool_max_conns=many"}, discardLogger())
	assert.ErrorContains(t, err, "connect to catalog db")
}

func TestOpenCatalog(t *testing.T) {
	c, err := openCatalog(t.Context(), Config{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, catalog.Seed(), c.List())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services:\n  - id: 5\n    name: Spanner\n    description: SQL\n"), 0o644))
	c, err = openCatalog(t.Context(), Config{CatalogFile: path}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []catalog.Service{{ID: 5, Name: "Spanner", Description: "SQL"}}, c.List())

	dup := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("services:\n  - id: 5\n    name: a\n  - id: 5\n    name: b\n"), 0o644))
	_, err = openCatalog(t.Context(), Config{CatalogFile: dup}, discardLogger())
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestServe(t *testing.T) {
	c, err := catalog.New(catalog.Seed())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{Handler: handlers.New(handlers.Deps{
		Catalog:     c,
		Environment: "test",
		Logger:      discardLogger(),
	})}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, 5*time.Second, discardLogger()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body handlers.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test", body.Environment)
	assert.Equal(t, body.Environment, resp.Header.Get(handlers.HeaderEnvironment))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
