package httpmw

import (
	"net/http"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

func writeLimited(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// RateLimit is a process-wide token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return passthrough
	}
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				writeLimited(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ConcurrencyLimit caps in-flight requests to protect the database. A
// request waits for a slot until its context ends. max <= 0 disables it.
func ConcurrencyLimit(max int64) func(http.Handler) http.Handler {
	if max <= 0 {
		return passthrough
	}
	sem := semaphore.NewWeighted(max)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				writeLimited(w, http.StatusServiceUnavailable, "server busy")
				return
			}
			defer sem.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }
