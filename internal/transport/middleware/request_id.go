package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adumedia/website-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-ID"

// RequestID returns middleware that tags every request with an id. An
// incoming X-Request-ID header is trusted and propagated; otherwise a
// new UUID is generated. The id is stored in the context and echoed in
// the response header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := ctxutil.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
