package auth

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"Beltline/internal/httpjson"
)

// IdleVisitor is how long a client may stay quiet before Sweep forgets its
// bucket.
const IdleVisitor = 10 * time.Minute

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter throttles /api per client host. Buckets of clients that went
// quiet are dropped by Sweep so the table does not grow without bound.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

// reserve takes one token for host and reports how long the caller would
// have to wait for it. Zero means the request may proceed.
func (l *IPRateLimiter) reserve(host string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[host]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[host] = v
	}
	v.lastSeen = now

	res := v.bucket.ReserveN(now, 1)
	if !res.OK() {
		return time.Duration(math.MaxInt64)
	}
	wait := res.DelayFrom(now)
	if wait > 0 {
		// the token stays in the bucket for the next caller
		res.CancelAt(now)
	}
	return wait
}

// Prune drops visitors idle for longer than idle and returns how many remain.
func (l *IPRateLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	for host, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, host)
		}
	}
	return len(l.visitors)
}

// Sweep prunes idle visitors every idle interval until ctx is done.
func (l *IPRateLimiter) Sweep(ctx context.Context, idle time.Duration) {
	t := time.NewTicker(idle)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Prune(idle)
		}
	}
}

func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (l *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wait := l.reserve(clientHost(r))
		if wait > 0 {
			secs := int(math.Ceil(wait.Seconds()))
			if wait == time.Duration(math.MaxInt64) {
				secs = int(IdleVisitor.Seconds())
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			httpjson.Write(w, http.StatusTooManyRequests, map[string]string{
				"error": "too many requests",
				"hint":  "retry in " + strconv.Itoa(secs) + "s",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
