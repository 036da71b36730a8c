package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/atelier/internal/config"
	"github.com/aretw0/atelier/pkg/adapters/file"
	"github.com/aretw0/atelier/pkg/adapters/memory"
	"github.com/aretw0/atelier/pkg/adapters/redis"
	"github.com/aretw0/atelier/pkg/persistence/middleware"
	"github.com/aretw0/atelier/pkg/ports"
)

// Backend is the document store selected by the configuration, with the
// locker that guards it across processes when one is needed.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases the connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend creates the store described by cfg. Redaction runs before
// encryption, so masked values never reach the cipher.
func OpenBackend(cfg config.StoreConfig, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}
	switch cfg.Kind {
	case config.StoreMemory, "":
		b.Store = memory.NewStore()
	case config.StoreFile:
		store := file.New(cfg.Dir)
		b.Store = store
		logger.Info("Using file store", "dir", store.BasePath)
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		b.Store = store
		b.Locker = redis.NewLocker(store.Client(), prefix)
		b.close = store.Close
		logger.Info("Using redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mws = append(mws, middleware.NewRedactionMiddleware(cfg.Redact))
	}
	if cfg.EncryptionKey != "" {
		key, err := hex.DecodeString(cfg.EncryptionKey)
		if err != nil || len(key) != 32 {
			return nil, errors.Join(errors.New("encryption key must be 32 hex-encoded bytes"), err, b.Close())
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}
