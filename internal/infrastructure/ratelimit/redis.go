// Package ratelimit implementa un límite de intentos por ventana fija sobre Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/campus-placement-api/pkg/config"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
)

// INCR + PEXPIRE en un solo viaje: el primer intento de la ventana fija el TTL.
const windowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const callTimeout = 250 * time.Millisecond

// NewClient crea el cliente Redis. Devuelve nil si no hay dirección configurada.
func NewClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisLimiter límite de ventana fija por clave. Un limiter nil permite todo.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
	prefix string
	log    *logger.Logger
}

// NewRedisLimiter construye el limiter; con client nil devuelve nil (sin límite).
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string, log *logger.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(windowScript),
		limit:  limit,
		window: window,
		prefix: prefix,
		log:    log.Component("ratelimit"),
	}
}

// Allow cuenta un intento para key e informa si sigue dentro del límite.
// Si Redis falla se permite el intento y se registra el error.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.limit <= 0 || l.window <= 0 || key == "" {
		return true
	}
	if l.prefix != "" {
		key = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, l.limit).Int64()
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("rate limit no disponible, se permite el intento")
		return true
	}
	return allowed == 1
}
