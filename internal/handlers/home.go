package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// staticDir can be overridden when the binary runs from a different working
// directory than the repository root.
var staticDir = filepath.Join("web", "static")

// Home serves the single-page fridge UI. Any other path falls through to a
// plain 404 so API typos do not silently return HTML.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	index := filepath.Join(staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.Error(w, "ui assets not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, index)
}
