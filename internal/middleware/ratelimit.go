package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LoginRateLimiter throttles failed login attempts per client IP
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	done        chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter allows maxAttempts failures per window and starts a
// background cleanup. Call Stop to end it.
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the cleanup goroutine
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// IsAllowed reports whether ip may attempt another login
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	recent := rl.prune(ip, rl.now())
	return len(recent) < rl.maxAttempts
}

// RecordAttempt records a failed login for ip
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	rl.attempts[ip] = append(rl.prune(ip, now), now)
}

// GetTimeUntilAllowed returns how long ip must wait before its next attempt
func (rl *LoginRateLimiter) GetTimeUntilAllowed(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	recent := rl.prune(ip, now)
	if len(recent) < rl.maxAttempts {
		return 0
	}
	// the oldest attempt that keeps ip at the limit
	oldest := recent[len(recent)-rl.maxAttempts]
	return oldest.Add(rl.window).Sub(now)
}

// prune drops attempts outside the window; callers hold the mutex
func (rl *LoginRateLimiter) prune(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	attempts := rl.attempts[ip]

	valid := attempts[:0]
	for _, at := range attempts {
		if at.After(cutoff) {
			valid = append(valid, at)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			now := rl.now()
			for ip := range rl.attempts {
				rl.prune(ip, now)
			}
			rl.mutex.Unlock()
		}
	}
}

// LoginRateLimit blocks clients with too many recent failed logins. A response
// of 401 counts as a failure.
func LoginRateLimit(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !rateLimiter.IsAllowed(ip) {
				wait := rateLimiter.GetTimeUntilAllowed(ip)
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Round(time.Second).Seconds())))
				writeError(w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many login attempts. Please try again later.")
				return
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			if wrapped.statusCode == http.StatusUnauthorized {
				rateLimiter.RecordAttempt(ip)
			}
		})
	}
}
