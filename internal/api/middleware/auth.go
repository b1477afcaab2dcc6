package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

// AdminRealm is the basic-auth realm presented to browsers.
const AdminRealm = "Admin Area"

// AdminAuth gates a route group behind HTTP basic auth with a single
// credential pair. Comparison is constant time.
func AdminAuth(username, password string) func(http.Handler) http.Handler {
	return chimw.BasicAuth(AdminRealm, map[string]string{username: password})
}
