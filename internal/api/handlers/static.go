package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// StaticHandler serves the site's assets and falls back to index.html for any
// path that is not a file, so client-side routes survive a reload.
type StaticHandler struct {
	files      fs.FS
	fileServer http.Handler
}

func NewStaticHandler(files fs.FS) *StaticHandler {
	return &StaticHandler{
		files:      files,
		fileServer: http.FileServer(http.FS(files)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		APINotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && name != "index.html" {
		if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
			h.fileServer.ServeHTTP(w, r)
			return
		}
		// missing assets are real 404s, only route-like paths get the SPA shell
		if path.Ext(name) != "" {
			http.NotFound(w, r)
			return
		}
	}

	h.serveIndex(w, r)
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := fs.ReadFile(h.files, "index.html")
	if err != nil {
		logrus.WithError(err).Error("[static] index.html missing")
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(index)
	}
}
