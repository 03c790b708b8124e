package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mmynk/nutritrack/internal/jsend"
	"github.com/mmynk/nutritrack/internal/models"
)

// safeFilename rejects anything that is not a single plain path element.
func safeFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return models.Validationf("invalid file name %q", name)
	case strings.ContainsAny(name, `/\`), strings.Contains(name, ".."), strings.HasPrefix(name, "."):
		return models.Validationf("invalid file name %q", name)
	case filepath.Base(name) != name:
		return models.Validationf("invalid file name %q", name)
	}
	return nil
}

// handleImage serves one file from the images directory.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if err := safeFilename(name); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	if s.imagesDir == "" {
		jsend.FromError(w, r, models.NotFoundf("image %s", name))
		return
	}
	path := filepath.Join(s.imagesDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		jsend.FromError(w, r, models.NotFoundf("image %s", name))
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=86400")
	http.ServeFile(w, r, path)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, r, "/auth/login.html", "")
}

// handlePage serves /app/* from the static directory, falling back to app/index.html.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if strings.HasSuffix(urlPath, "/") {
		urlPath += "index.html"
	} else if filepath.Ext(urlPath) == "" {
		urlPath += ".html"
	}
	s.serveStatic(w, r, urlPath, "/app/index.html")
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, urlPath, fallback string) {
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}
	staticDir, err := filepath.Abs(s.staticDir)
	if err != nil {
		http.Error(w, "static path misconfigured", http.StatusInternalServerError)
		return
	}

	// Clean against a rooted path so ".." cannot climb out of staticDir.
	filePath := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+urlPath)))
	if info, err := os.Stat(filePath); err == nil && info.Mode().IsRegular() {
		http.ServeFile(w, r, filePath)
		return
	}
	if fallback != "" {
		if fb := filepath.Join(staticDir, filepath.FromSlash(fallback)); fileExists(fb) {
			http.ServeFile(w, r, fb)
			return
		}
	}
	http.NotFound(w, r)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
