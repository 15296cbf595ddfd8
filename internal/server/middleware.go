package server

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/orderhub/internal/auth/domain"
	obscontext "github.com/smallbiznis/orderhub/internal/observability/context"
	"github.com/smallbiznis/orderhub/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/orderhub/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	contextSessionKey = "session"

	rateLimitReasonClaim = "claim_bucket_exhausted"
)

// AuthRequired rejects the request unless it carries a valid session token.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		bindSession(c, session)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is present. A stale or
// forged token downgrades the caller to anonymous instead of failing.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			c.Next()
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			bindSession(c, session)
		case errors.Is(err, authdomain.ErrInvalidSession), errors.Is(err, authdomain.ErrSessionExpired):
			logger.FromContext(c.Request.Context()).Debug("ignoring invalid session on optional route", zap.Error(err))
		default:
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// ClaimRateLimit charges each claim attempt to the account, or the client ip
// for anonymous callers. Limiter outages let the request through.
func (s *Server) ClaimRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.claimLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := normalizeRateLimitEndpoint(c)

		subject := "ip:" + c.ClientIP()
		if session, ok := sessionFromContext(c); ok {
			subject = "account:" + session.AccountID
		}

		result, err := s.claimLimiter.Allow(ctx, subject)
		if err != nil {
			logger.FromContext(ctx).Warn("claim rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !result.Allowed {
			denyRateLimit(c, endpoint, rateLimitReasonClaim, result.RetryAfter, s.obsMetrics)
			return
		}

		recordRateLimitAllowed(ctx, endpoint, s.obsMetrics)
		c.Next()
	}
}

func bindSession(c *gin.Context, session *authdomain.Session) {
	c.Set(contextSessionKey, session)
	ctx := obscontext.WithAccountID(c.Request.Context(), session.AccountID)
	c.Request = c.Request.WithContext(ctx)
}

func sessionFromContext(c *gin.Context) (*authdomain.Session, bool) {
	value, ok := c.Get(contextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*authdomain.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

func denyRateLimit(c *gin.Context, endpoint, reason string, retryAfter time.Duration, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	logger.FromContext(ctx).Warn("rate limit exceeded",
		zap.String("reason", reason),
		zap.String("endpoint", endpoint),
	)
	recordRateLimitDenied(ctx, endpoint, reason, metrics)

	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
	c.Header("X-Rate-Limited-Reason", reason)
	AbortWithError(c, ErrRateLimited)
}

// retryAfterSeconds rounds up so clients never retry before a token exists.
func retryAfterSeconds(d time.Duration) int {
	return max(int(math.Ceil(d.Seconds())), 1)
}

func recordRateLimitAllowed(ctx context.Context, endpoint string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitAllowed(ctx, endpoint)
}

func recordRateLimitDenied(ctx context.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitDenied(ctx, endpoint, reason)
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
