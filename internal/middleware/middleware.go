package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/VoteScope/VS-Dashboards/internal/session"
	"github.com/VoteScope/VS-Dashboards/internal/utils"
)

// SessionMiddleware attaches the per-browser data session to the request
// context, creating it (and the cookie) on first contact. The session only
// scopes in-memory dataset caching; there is no authentication.
func SessionMiddleware(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie("session_id"); err == nil {
				id = cookie.Value
			}

			s := store.Get(id)
			if s.ID != id {
				http.SetCookie(w, &http.Cookie{
					Name:     "session_id",
					Value:    s.ID,
					Path:     "/",
					Expires:  time.Now().Add(24 * time.Hour),
					HttpOnly: true,
				})
			}

			ctx := context.WithValue(r.Context(), utils.ContextSessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:5173": {},
	"http://localhost:5174": {},
	"http://localhost:8501": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Server-Timing, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
