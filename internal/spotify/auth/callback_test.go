package auth

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func startCallbackServer(t *testing.T, path string) *CallbackServer {
	t.Helper()
	server, err := NewCallbackServer(0, path)
	if err != nil {
		t.Fatalf("NewCallbackServer() error = %v", err)
	}
	server.Start()
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	if server.Port() == 0 {
		t.Fatal("Server port should not be 0 after starting")
	}
	return server
}

func hit(t *testing.T, url string) {
	go func() {
		time.Sleep(50 * time.Millisecond)
		resp, err := http.Get(url)
		if err != nil {
			t.Errorf("callback request failed: %v", err)
			return
		}
		_ = resp.Body.Close()
	}()
}

func TestCallbackServer(t *testing.T) {
	server := startCallbackServer(t, "/callback")
	hit(t, fmt.Sprintf("http://127.0.0.1:%d/callback?code=test_code&state=test_state", server.Port()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := server.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Code != "test_code" || result.State != "test_state" || result.Error != "" {
		t.Errorf("result = %+v", result)
	}
}

func TestCallbackServerCustomPath(t *testing.T) {
	server := startCallbackServer(t, "/auth/done")
	hit(t, fmt.Sprintf("http://127.0.0.1:%d/auth/done?code=abc&state=s", server.Port()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := server.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Code != "abc" {
		t.Errorf("Code = %q, want abc", result.Code)
	}
}

func TestCallbackServerError(t *testing.T) {
	server := startCallbackServer(t, "")
	hit(t, fmt.Sprintf("http://127.0.0.1:%d/callback?error=access_denied&state=test_state", server.Port()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := server.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Error != "access_denied" {
		t.Errorf("Error = %q, want %q", result.Error, "access_denied")
	}
}

func TestCallbackServerTimeout(t *testing.T) {
	server := startCallbackServer(t, "/callback")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := server.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want %v", err, context.DeadlineExceeded)
	}
}
