package util

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHuman(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{3 << 20, "3.00 MB"},
		{5 << 30, "5.00 GB"},
		{2 << 40, "2.00 TB"},
		{-1, "unknown"},
	}

	for _, tt := range tests {
		if got := Human(tt.n); got != tt.want {
			t.Errorf("Human(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "new" {
		t.Fatalf("contents = %q, want %q", b, "new")
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")

	called := false
	err := WriteFile(path, func(w io.Writer) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("WriteFile returned nil error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	if called {
		t.Fatal("write callback ran for missing directory")
	}
}

func TestWriteFile_FailedWriteKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("previous image"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "half")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "previous image" {
		t.Fatalf("contents = %q, want the previous file untouched", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only out.png", len(entries))
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/Pictures"); got != filepath.Join(home, "Pictures") {
		t.Fatalf("ExpandHome(~/Pictures) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("ExpandHome(/abs/path) = %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Fatalf("ExpandHome(~user/x) = %q", got)
	}
}

func TestNewHTTPClient_SetsHeaders(t *testing.T) {
	t.Parallel()

	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(cookieFile, []byte("\n  b=2  \nc=3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var gotUA, gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPClientOptions{
		UserAgent:  "apodd-test",
		Cookie:     "a=1",
		CookieFile: cookieFile,
		Transport:  http.DefaultTransport,
	})
	if err != nil {
		t.Fatalf("NewHTTPClient returned error: %v", err)
	}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	_ = resp.Body.Close()

	if gotUA != "apodd-test" {
		t.Fatalf("User-Agent = %q, want %q", gotUA, "apodd-test")
	}
	if !strings.Contains(gotCookie, "a=1") || !strings.Contains(gotCookie, "b=2") {
		t.Fatalf("Cookie = %q, want a=1 and b=2", gotCookie)
	}
	if strings.Contains(gotCookie, "c=3") {
		t.Fatalf("Cookie = %q, only the first cookie file line should be used", gotCookie)
	}
}

func TestPickUserAgent(t *testing.T) {
	if got := PickUserAgent("custom"); got != "custom" {
		t.Fatalf("PickUserAgent(custom) = %q", got)
	}
	if got := PickUserAgent(""); !strings.HasPrefix(got, "apodd/") {
		t.Fatalf("PickUserAgent(\"\") = %q", got)
	}
}
