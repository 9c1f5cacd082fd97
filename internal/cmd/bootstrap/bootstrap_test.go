package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/utechsu/councilpulse/internal/assessment"
)

func TestOpenStoreInMemory(t *testing.T) {
	st, err := OpenStore(context.Background(), StoreConfig{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if st.RemoteEnabled() {
		t.Fatal("remote must be disabled by default")
	}
	if _, err := st.Append(context.Background(), assessment.Response{Name: "mem"}); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestOpenStoreSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.db")
	st, err := OpenStore(context.Background(), StoreConfig{DBPath: path})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if _, err := st.Append(context.Background(), assessment.Response{Name: "durable"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestOpenStoreMisconfiguredRemoteFallsBackLocal(t *testing.T) {
	st, err := OpenStore(context.Background(), StoreConfig{UseSheets: true})
	if err != nil {
		t.Fatalf("misconfigured remote must not be fatal: %v", err)
	}
	defer st.Close()

	if st.RemoteEnabled() {
		t.Fatal("expected local-only session")
	}
}

func TestLoadCredentialsInline(t *testing.T) {
	creds, err := loadCredentials(`{"type":"service_account"}`)
	if err != nil {
		t.Fatalf("load inline credentials: %v", err)
	}
	if string(creds) != `{"type":"service_account"}` {
		t.Fatalf("unexpected credentials: %s", creds)
	}
}

func TestLoadCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatalf("write credentials file: %v", err)
	}

	creds, err := loadCredentials("@" + path)
	if err != nil {
		t.Fatalf("load file credentials: %v", err)
	}
	if string(creds) != `{"type":"service_account"}` {
		t.Fatalf("unexpected credentials: %s", creds)
	}
}

func TestLoadCredentialsEmpty(t *testing.T) {
	if _, err := loadCredentials("  "); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}
