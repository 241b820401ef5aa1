package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T, path string) *TokenStorage {
	t.Helper()
	storage, err := NewTokenStorage(path)
	if err != nil {
		t.Fatalf("NewTokenStorage() error = %v", err)
	}
	return storage
}

func TestTokenStorage(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	storage := newTestStorage(t, tokenPath)

	if storage.Exists() {
		t.Error("Exists() = true, want false for new storage")
	}
	token, err := storage.Load()
	if err != nil || token != nil {
		t.Fatalf("Load() = %v, %v; want nil, nil", token, err)
	}

	want := &Token{
		AccessToken:  "access_123",
		TokenType:    "Bearer",
		Scope:        "user-read-playback-state user-modify-playback-state",
		ExpiresIn:    3600,
		RefreshToken: "refresh_456",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := storage.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !storage.Exists() {
		t.Error("Exists() = false after save, want true")
	}

	got, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	info, err := os.Stat(tokenPath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("file mode = %o, want 0600", mode)
	}

	if err := storage.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if storage.Exists() {
		t.Error("Exists() = true after delete, want false")
	}
	if err := storage.Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestTokenStorageReplaceLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	storage := newTestStorage(t, filepath.Join(dir, "token.json"))

	for _, access := range []string{"first", "second"} {
		if err := storage.Save(&Token{AccessToken: access}); err != nil {
			t.Fatalf("Save(%s) error = %v", access, err)
		}
	}

	got, err := storage.Load()
	if err != nil || got.AccessToken != "second" {
		t.Fatalf("Load() = %+v, %v; want second token", got, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the token file", len(entries))
	}
}

func TestTokenStorageRejectsEmptyToken(t *testing.T) {
	storage := newTestStorage(t, filepath.Join(t.TempDir(), "token.json"))

	for _, tok := range []*Token{nil, {RefreshToken: "r"}} {
		if err := storage.Save(tok); err == nil {
			t.Errorf("Save(%+v) error = nil, want error", tok)
		}
	}
	if storage.Exists() {
		t.Error("empty token was written")
	}
}

func TestTokenStorageBadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt", "{not json"},
		{"no access token", `{"refresh_token":"r"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenPath := filepath.Join(t.TempDir(), "token.json")
			if err := os.WriteFile(tokenPath, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := newTestStorage(t, tokenPath).Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestTokenStoragePath(t *testing.T) {
	path := "/custom/path/token.json"
	if got := newTestStorage(t, path).Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}

	storage, err := NewTokenStorage("")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(filepath.Dir(storage.Path())) != "wavebar" {
		t.Errorf("Path() = %q, want inside a wavebar directory", storage.Path())
	}
}
