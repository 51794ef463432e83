package middleware

import (
	"net/http"
	"strings"

	"github.com/hourglassfit/hourglass/internal/auth"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
)

// AuthMiddlewareHandler guards the admin surface. Most of the coaching app
// is readable without a session; mutations to the video catalog, the backup
// trigger and the danger-zone wipe require a logged-in admin session.
// In read-only mode every mutating request is rejected, logged-in or not.
type AuthMiddlewareHandler struct {
	loginChecker     auth.Checker
	adminUIEnabled   bool
	readOnly         bool
	adminOnlyPaths   map[string]bool
	adminOnlyPrefix  []string
	readOnlyExcluded map[string]bool
}

func NewAuthMiddlewareHandler(
	loginChecker auth.Checker,
	adminUIEnabled bool,
	readOnly bool,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker:   loginChecker,
		adminUIEnabled: adminUIEnabled,
		readOnly:       readOnly,
		adminOnlyPaths: map[string]bool{
			"/backup":         true,
			"/user/data/wipe": true,
		},
		// GET /videos/mapping stays public, writes to single mapping
		// entries and file uploads are admin territory
		adminOnlyPrefix: []string{
			"/videos/upload",
			"/videos/mapping/",
		},
		// login and logout must stay reachable even in read-only mode
		readOnlyExcluded: map[string]bool{
			"/a/login":  true,
			"/a/logout": true,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAdminOnly(path string) bool {
	if h.adminOnlyPaths[path] {
		return true
	}
	for _, prefix := range h.adminOnlyPrefix {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.readOnly && r.Method != http.MethodGet && !h.readOnlyExcluded[r.URL.Path] {
				log.Tracef("[read-only] rejected %s %s", r.Method, r.URL.Path)
				http.Error(w, "read-only mode", http.StatusForbidden)
				span.SetStatus(codes.Error, "read-only")
				return
			}

			if !h.pathIsAdminOnly(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if !h.adminUIEnabled {
				log.Tracef("[admin disabled] [auth middleware] forbidden => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusForbidden)
				span.SetStatus(codes.Error, "admin-disabled")
				return
			}

			// a non-standard req. header is set, and thus - browser makes a preflight/OPTIONS request:
			//	https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#preflighted_requests
			authToken := r.Header.Get("X-HOURGLASS-TOKEN")
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			isLogged, err := h.loginChecker.IsLogged(ctx, authToken)
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}
			if !isLogged {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
