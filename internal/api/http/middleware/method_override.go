package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms issue PUT and DELETE requests by POSTing
// with a `_method` query parameter or form field. It wraps the router rather
// than running as route middleware because the override must happen before
// route matching.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				// ParseForm caches the parsed body, so later binding still sees it.
				if err := r.ParseForm(); err == nil {
					m = r.PostFormValue("_method")
				}
			}

			switch strings.ToUpper(m) {
			case http.MethodPut, http.MethodDelete, http.MethodPatch:
				r.Method = strings.ToUpper(m)
			}
		}

		next.ServeHTTP(w, r)
	})
}
