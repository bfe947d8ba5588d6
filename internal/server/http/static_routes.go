package httpserver

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterStaticRoutes serves webDir at / when the directory exists.
// JS and CSS are sent with no-cache headers so a rebuilt frontend is picked up
// without a hard reload.
func RegisterStaticRoutes(r chi.Router, webDir string) bool {
	if webDir == "" {
		return false
	}
	if st, err := os.Stat(webDir); err != nil || !st.IsDir() {
		return false
	}
	r.Handle("/*", noCacheMiddleware(http.FileServer(http.Dir(webDir))))
	return true
}

func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".js") || strings.HasSuffix(r.URL.Path, ".css") || r.URL.Path == "/" {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		next.ServeHTTP(w, r)
	})
}
