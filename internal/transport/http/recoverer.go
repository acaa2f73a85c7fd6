package httptransport

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// recoverer converts handler panics into a 500 response so one failing
// request never takes down the process.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic in request handler",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				respond.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
