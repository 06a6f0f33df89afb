package middleware

import "net/http"

// ServerSoftware is the value stamped on every response in the
// X-Server-Software header — a fixed informational marker identifying the
// serving software and version.
const ServerSoftware = "notebot/1.0.0"

// ServerHeader sets the X-Server-Software header on every response.
// Headers must be set before the handler writes the body, hence a
// middleware rather than an after-the-fact hook.
func ServerHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Server-Software", ServerSoftware)
		next.ServeHTTP(w, r)
	})
}
