package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
)

const (
	msgRateLimited = "too many requests, please try again later"

	// idleLimiterTTL лимитеры неактивных адресов удаляются
	idleLimiterTTL = 10 * time.Minute
)

type Logger interface {
	Warn(format string, v ...interface{})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP адреса
type RateLimiter struct {
	limit          rate.Limit
	burst          int
	trustedProxies []netip.Prefix
	logger         Logger
	now            func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
}

// NewRateLimiter requestsPerMinute запросов в минуту с запасом burst.
// Заголовкам X-Forwarded-For и X-Real-IP верим только от trustedProxies.
func NewRateLimiter(requestsPerMinute, burst int, trustedProxies []netip.Prefix, logger Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:          rate.Every(time.Minute / time.Duration(max(requestsPerMinute, 1))),
		burst:          burst,
		trustedProxies: trustedProxies,
		logger:         logger,
		now:            time.Now,
		visitors:       make(map[string]*visitor),
	}
}

// Allow проверяет и расходует токен для ip
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.gc(now)

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// gc вызывается под мьютексом
func (l *RateLimiter) gc(now time.Time) {
	if now.Sub(l.lastGC) < idleLimiterTTL {
		return
	}
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleLimiterTTL {
			delete(l.visitors, ip)
		}
	}
	l.lastGC = now
}

// Middleware отвечает 429, если лимит для адреса исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.Allow(ip) {
			l.logger.Warn("Rate limit exceeded: ip=%s, path=%s", ip, r.URL.Path)
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP адрес клиента для лимита.
// Если запрос пришёл не от доверенного прокси, используется RemoteAddr.
// Иначе X-Forwarded-For читается справа налево до первого недоверенного адреса.
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	if !l.isTrusted(remote) {
		return remote
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !l.isTrusted(hop) || i == 0 {
				return hop
			}
		}
		return remote
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		if _, err := netip.ParseAddr(ip); err == nil {
			return ip
		}
	}
	return remote
}

func (l *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
