package middleware

import (
	"net/http"
	"strings"
)

// Headers attached to every outgoing response. Browser callers on any origin
// must be able to see both successes and failures.
const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

// CORS decorates each response with the gateway's permissive cross-origin
// headers and answers API preflight requests with an empty 204. Headers are
// set before the wrapped handler runs so streamed bodies are never buffered.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if r.Method == http.MethodOptions && strings.HasPrefix(r.URL.Path, "/api/") {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
