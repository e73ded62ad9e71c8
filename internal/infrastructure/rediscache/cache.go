// Package rediscache mantém um cache TTL das listagens públicas do site.
// O deploy original é serverless: cada acesso pago uma consulta fria ao banco;
// as páginas públicas são só leitura, então toleram alguns segundos de atraso.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wendriu/estoque-api/pkg/config"
	"github.com/wendriu/estoque-api/pkg/logger"
)

// Cache wrapper fino sobre go-redis. Um Cache nil desabilita o caching: todos
// os métodos viram no-op, e os handlers seguem direto para o banco.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New conecta ao Redis da configuração. Addr vazio devolve nil (cache
// desabilitado); falha de ping também, com log de aviso — cache é best-effort,
// nunca derruba a aplicação.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis indisponível; cache das listagens desabilitado")
		_ = rdb.Close()
		return nil
	}
	ttl := time.Duration(cfg.TTLSecs) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

// GetJSON busca key e desserializa em dest. Devolve false em miss ou erro
// (erro só é logado; o chamador consulta o banco normalmente).
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("falha ao ler cache")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache com payload inválido; ignorando")
		return false
	}
	return true
}

// SetJSON serializa val e grava em key com o TTL configurado. Best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("falha ao serializar para o cache")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("falha ao gravar cache")
	}
}

// Close encerra a conexão com o Redis.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
