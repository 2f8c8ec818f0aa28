package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend. Requests matching a real file
// under the dist directory get that file; everything else gets
// index.html so client-side routing works. When the frontend was never
// built, it answers a JSON hint instead of a blank 404.
type SPAHandler struct {
	dir string
}

// NewSPAHandler creates an SPAHandler rooted at dir.
func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{dir: dir}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Normalize and contain the path inside the dist directory.
	rel := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		rel = "index.html"
	}

	path := filepath.Join(h.dir, rel)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "ADUmedia API is running",
			"health":  "/api/health",
			"note":    "Frontend not built. Run 'npm run build' in frontend directory.",
		})
		return
	}

	http.ServeFile(w, r, index)
}
