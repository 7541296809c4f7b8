package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/configuration"
)

func tokenFromRequest(r *http.Request) string {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.Session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Authenticate resolves the session token, if any, and attaches the
// session to the request context. It never rejects by itself; the
// guards below do.
func Authenticate(auth *services.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token != "" {
				if sess, err := auth.Authorize(r.Context(), token); err == nil {
					r = r.WithContext(session.WithContext(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			http.Error(w, `{"code":"UNAUTHORIZED","message":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated sends signed-in users away from auth-only
// pages such as the login form.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireObject gates the wrapped handler on a portal-object
// permission. The handler is either fully executed or fully denied;
// there is no partial render.
func RequireObject(objectCode string, action permission.Action) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"authentication required"}`, http.StatusUnauthorized)
				return
			}
			if !sess.Permissions.Has(objectCode, action) {
				http.Error(w, `{"code":"FORBIDDEN","message":"access denied"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
