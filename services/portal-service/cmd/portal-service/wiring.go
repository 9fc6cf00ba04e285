package main

import (
	"log/slog"
	"time"

	"github.com/randevubot/randevubot/libs/config"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
	"github.com/redis/go-redis/v9"
)

// openSessionBackend picks the session store from SESSION_BACKEND. Redis is
// the default when REDIS_ADDR is set, memory otherwise.
func openSessionBackend(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) (session.Backend, func(), runtime.ReadyCheck) {
	kind := config.String("SESSION_BACKEND", "")
	if kind == "" {
		kind = "memory"
		if rdb != nil {
			kind = "redis"
		}
	}
	switch kind {
	case "redis":
		if rdb == nil {
			panic("SESSION_BACKEND=redis requires REDIS_ADDR")
		}
		logger.Info("session backend", "kind", kind, "ttl", ttl.String())
		return session.NewRedisBackend(rdb, ttl), func() {}, runtime.ReadyCheck{}
	case "bolt":
		path := config.String("SESSION_BOLT_PATH", "portal-sessions.db")
		bb, err := session.OpenBolt(path)
		if err != nil {
			panic(err)
		}
		logger.Info("session backend", "kind", kind, "path", path)
		return bb, func() { _ = bb.Close() }, runtime.ReadyCheck{Name: "sessions", Check: bb.ReadyCheck}
	case "memory":
		logger.Warn("session backend is in-memory; sessions are lost on restart")
		return session.NewMemoryBackend(), func() {}, runtime.ReadyCheck{}
	default:
		panic("unknown SESSION_BACKEND " + kind)
	}
}

func rateLimit(rdb *redis.Client, logger *slog.Logger) httpx.Middleware {
	limit, err := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil || limit <= 0 {
		limit = 60
	}
	if rdb != nil {
		failOpen, err := config.Bool("RATE_LIMIT_FAIL_OPEN", true)
		if err != nil {
			failOpen = true
		}
		logger.Info("rate limiting enabled (redis)", "per_minute", limit)
		return httpx.NewRedisRateLimiter(rdb, limit, time.Minute, "portal:rl").Middleware(logger, failOpen)
	}
	logger.Info("rate limiting enabled (in-memory)", "per_minute", limit)
	return httpx.NewRateLimiter(limit, time.Minute).Middleware()
}
