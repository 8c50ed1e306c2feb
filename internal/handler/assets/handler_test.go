package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html": "<html>triage ui</html>",
		"app.js":     "console.log('triage')",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestServesExistingFile(t *testing.T) {
	h := New(setupDir(t))

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "console.log") {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestRootServesIndex(t *testing.T) {
	h := New(setupDir(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "triage ui") {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestUnknownPathFallsBackToIndex(t *testing.T) {
	h := New(setupDir(t))

	req := httptest.NewRequest(http.MethodGet, "/sessions/42", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 fallback, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "triage ui") {
		t.Fatalf("expected index fallback, got %q", resp.Body.String())
	}
}
