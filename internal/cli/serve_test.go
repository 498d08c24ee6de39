package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadoconstrutor/storefront-acceptance/internal/config"
)

func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

func createTestDeps(t *testing.T, port string) ServerDependencies {
	t.Helper()
	return ServerDependencies{
		ServerConfig: config.ServerConfig{Port: port},
		RunsHandler:  mockHandler("runs"),
		EvidenceDir:  t.TempDir(),
	}
}

func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	require.NoError(t, err, "Failed to start server")
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err, "Failed to make request to %s", url)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_SuccessfulStartup(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	assert.NotZero(t, port)
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "runs", body)
}

func TestStartServer_ServesEvidence(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")
	name := "busca-betoneira-sucesso-2025-03-07T09-05-01-000Z.png"
	require.NoError(t, os.WriteFile(filepath.Join(deps.EvidenceDir, name), []byte("png-bytes"), 0644))

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/evidencias/%s", port, name))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "png-bytes", body)

	_, status = httpGet(t, fmt.Sprintf("http://localhost:%d/evidencias/missing.png", port))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStartServer_InvalidPort(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "99999")

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
	}
	assert.Error(t, err)
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	existing, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer existing.Close()
	port := existing.Addr().(*net.TCPAddr).Port

	deps := createTestDeps(t, fmt.Sprintf("%d", port))

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
	}
	assert.Error(t, err)
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	_, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	require.Equal(t, http.StatusOK, status)

	// WHEN
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(ctx)

	// THEN
	assert.NoError(t, err)
	_, getErr := http.Get(fmt.Sprintf("http://localhost:%d/", port))
	assert.Error(t, getErr, "Expected error after shutdown")
}

func TestWaitForShutdown_Signal(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")
	listener, server, _ := startTestServer(t, deps)
	defer listener.Close()

	shutdown := make(chan os.Signal, 1)
	done := make(chan error, 1)

	// WHEN
	go func() {
		done <- WaitForShutdown(server, shutdown)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not return")
	}
}
