package assets

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Handler serves the triage UI bundle from a local directory, standing in for
// the platform asset binding. Paths that match no file fall back to
// index.html so client-side routes resolve after a hard refresh.
type Handler struct {
	root string
	fs   http.Handler
}

// New returns a Handler rooted at dir.
func New(dir string) *Handler {
	return &Handler{
		root: dir,
		fs:   http.FileServer(http.Dir(dir)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Clean strips any ".." segments before the path touches the filesystem.
	p := path.Clean("/" + r.URL.Path)
	if p == "/" {
		h.fs.ServeHTTP(w, r)
		return
	}

	full := filepath.Join(h.root, filepath.FromSlash(p))
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}

	h.fs.ServeHTTP(w, r)
}
