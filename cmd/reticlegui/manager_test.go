package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPrerequisites(t *testing.T) {
	t.Chdir(t.TempDir())

	m := &Manager{}
	assert.False(t, m.checkPrerequisites())

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "reticle.yaml"), nil, 0o644))
	assert.True(t, m.checkPrerequisites())
}

func TestResolveAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":1921", "127.0.0.1:1921"},
		{"localhost:1921", "127.0.0.1:1921"},
		{"10.0.0.2:80", "10.0.0.2:80"},
	}
	for _, tt := range tests {
		m := &Manager{serverAddr: tt.addr}
		assert.Equal(t, tt.want, m.resolveAddr())
	}
}

func TestStart_AttachesToRunningServer(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "reticle.yaml"), nil, 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/version":
			_, _ = w.Write([]byte(`{"version": "test"}`))
		case "/api/window":
			_, _ = w.Write([]byte(`{"title":"Reticle","width":800,"height":600,"offset_x":0,"offset_y":0}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var (
		mu    sync.Mutex
		lines []string
	)
	got := make(chan WindowInfo, 1)
	m := NewManager(func(s string) {
		mu.Lock()
		lines = append(lines, s)
		mu.Unlock()
	}, nil, func(url string, info WindowInfo) {
		assert.Equal(t, srv.URL, url)
		got <- info
	}, strings.TrimPrefix(srv.URL, "http://"))
	m.Start()

	select {
	case info := <-got:
		assert.Equal(t, 800.0, info.Width)
		assert.Equal(t, "Reticle", info.Title)
	case <-time.After(3 * time.Second):
		t.Fatal("app was not enabled")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, lines, "> Server already active.")
}
