package middleware

import (
	"net/http"
	"strings"
)

// allowList holds the origins that receive CORS headers. A "*" entry allows
// every origin.
type allowList struct {
	any     bool
	origins map[string]struct{}
}

func newAllowList(origins []string) allowList {
	list := allowList{origins: make(map[string]struct{})}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			list.any = true
		default:
			list.origins[o] = struct{}{}
		}
	}
	return list
}

func (l allowList) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if l.any {
		return true
	}
	_, ok := l.origins[origin]
	return ok
}

// CORS returns middleware that handles CORS headers for the given origins.
// The capture clients post photos from a browser, so preflight requests are
// answered without reaching the handlers.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := newAllowList(origins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed.allows(origin) {
				if allowed.any {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
