package rest

import (
	"net"
	"net/http"
	"sync"
	"time"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/time/rate"
)

const (
	limiterMaxSize = 20000
	limiterIdleTTL = 10 * time.Minute
)

// IPRateLimiter ограничивает частоту запросов с одного IP.
// Лимитеры хранятся в ccache и вытесняются после простоя.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *ccache.Cache[*rate.Limiter]
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return newIPRateLimiter(r, burst, limiterIdleTTL)
}

func newIPRateLimiter(r rate.Limit, burst int, idleTTL time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: ccache.New(ccache.Configure[*rate.Limiter]().MaxSize(limiterMaxSize)),
		rate:     r,
		burst:    burst,
		idleTTL:  idleTTL,
	}
}

// NewPerMinuteLimiter - perMinute запросов в минуту, столько же разрешено подряд.
func NewPerMinuteLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return NewIPRateLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
}

// getLimiter вызывается под i.mu, иначе два запроса с нового IP получат разные лимитеры.
func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	item := i.limiters.Get(ip)
	if item != nil && !item.Expired() {
		item.Extend(i.idleTTL)
		return item.Value()
	}
	// Простой дольше idleTTL: корзина давно полна, новый лимитер ведет себя так же.
	limiter := rate.NewLimiter(i.rate, i.burst)
	i.limiters.Set(ip, limiter, i.idleTTL)
	return limiter
}

// Middleware отвечает 429 при превышении лимита.
// RemoteAddr уже исправлен middleware.RealIP.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !i.getLimiter(ip).Allow() {
			contextkeys.LoggerFromContext(r.Context()).Warn("Rate limit exceeded", port.Fields{"client_ip": ip})
			writeUseCaseError(w, domain.ErrRateLimited, domain.ErrorToast("Too many requests, please try again later"), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (i *IPRateLimiter) Stop() {
	i.limiters.Stop()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
