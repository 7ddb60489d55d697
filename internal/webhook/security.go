package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
	allowed     []*net.IPNet
	allowedIPs  map[string]bool
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	v := &SecurityValidator{
		config:     config,
		allowedIPs: make(map[string]bool),
	}
	if config.RateLimitPerMin > 0 {
		v.rateLimiter = newRateLimiter(config.RateLimitPerMin)
	}
	for _, entry := range config.AllowedIPs {
		if strings.Contains(entry, "/") {
			if _, ipNet, err := net.ParseCIDR(entry); err == nil {
				v.allowed = append(v.allowed, ipNet)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			v.allowedIPs[ip.String()] = true
		}
	}
	return v
}

// ValidateSignature verifies the GitHub HMAC signature over the raw body.
// sha256 is preferred; the legacy sha1 header is accepted when it is the
// only one present. Without a configured secret every request passes.
func (v *SecurityValidator) ValidateSignature(payload []byte, sig256, sig1 string) error {
	if v.config.Secret == "" {
		return nil
	}

	switch {
	case sig256 != "":
		return verifyHMAC(sha256.New, "sha256=", payload, sig256, v.config.Secret)
	case sig1 != "":
		return verifyHMAC(sha1.New, "sha1=", payload, sig1, v.config.Secret)
	default:
		return ErrMissingSignature
	}
}

func verifyHMAC(newHash func() hash.Hash, prefix string, payload []byte, signature, secret string) error {
	if !strings.HasPrefix(signature, prefix) {
		return fmt.Errorf("%w: format", ErrInvalidSignature)
	}

	// Decode hex to bytes for more secure comparison
	expectedSig, err := hex.DecodeString(strings.TrimPrefix(signature, prefix))
	if err != nil {
		return fmt.Errorf("%w: hex encoding", ErrInvalidSignature)
	}

	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)

	// Constant-time comparison on raw bytes
	if !hmac.Equal(expectedSig, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the X-Hub-Signature-256 value for payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// ValidateIPAddress checks if the request source is allowed. source is the
// client address as resolved by the engine's trusted proxy settings.
func (v *SecurityValidator) ValidateIPAddress(source string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	ip := net.ParseIP(source)
	if ip == nil {
		return fmt.Errorf("%w: unparseable address", ErrIPNotAllowed)
	}
	if v.allowedIPs[ip.String()] {
		return nil
	}
	for _, ipNet := range v.allowed {
		if ipNet.Contains(ip) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces rate limiting per source
func (v *SecurityValidator) CheckRateLimit(source string) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source, evicting idle sources.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique sources
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}
