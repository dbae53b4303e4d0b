package i18n

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound indicates no translation exists for the key in the given language.
var ErrNotFound = errors.New("translation not found")

// Store provides translation values from a backing datastore.
type Store interface {
	Lookup(ctx context.Context, lang, key string) (string, error)
}

// Translator resolves message keys to localized text with a redis
// read-through cache in front of the store. It is injected explicitly
// instead of being read from ambient state.
type Translator struct {
	store       Store
	cache       *redis.Client // nil disables caching
	ttl         time.Duration
	defaultLang string
	logger      *zap.Logger
}

// NewTranslator creates a Translator. cache may be nil, in which case every
// lookup goes straight to the store.
func NewTranslator(store Store, cache *redis.Client, defaultLang string, ttl time.Duration, logger *zap.Logger) *Translator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Translator{
		store:       store,
		cache:       cache,
		ttl:         ttl,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// DefaultLanguage returns the configured fallback language code.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// T resolves key in lang, falling back to the default language and finally to
// the provided fallback text. Lookup failures are logged, never surfaced.
func (t *Translator) T(ctx context.Context, lang, key, fallback string) string {
	if key == "" {
		return fallback
	}
	if lang == "" {
		lang = t.defaultLang
	}

	value, err := t.lookup(ctx, lang, key)
	if err == nil {
		return value
	}
	if !errors.Is(err, ErrNotFound) {
		t.logger.Warn("translation lookup failed",
			zap.String("lang", lang), zap.String("key", key), zap.Error(err))
		return fallback
	}

	if lang != t.defaultLang {
		if value, err := t.lookup(ctx, t.defaultLang, key); err == nil {
			return value
		}
	}
	return fallback
}

// Invalidate removes a cached translation so the next lookup hits the store.
func (t *Translator) Invalidate(ctx context.Context, lang, key string) error {
	if t.cache == nil {
		return nil
	}
	return t.cache.Del(ctx, cacheKey(lang, key)).Err()
}

func (t *Translator) lookup(ctx context.Context, lang, key string) (string, error) {
	if t.cache != nil {
		value, err := t.cache.Get(ctx, cacheKey(lang, key)).Result()
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, redis.Nil) {
			t.logger.Warn("translation cache read failed", zap.Error(err))
		}
	}

	value, err := t.store.Lookup(ctx, lang, key)
	if err != nil {
		return "", err
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, cacheKey(lang, key), value, t.ttl).Err(); err != nil {
			t.logger.Warn("translation cache write failed", zap.Error(err))
		}
	}
	return value, nil
}

func cacheKey(lang, key string) string {
	return fmt.Sprintf("i18n:%s:%s", lang, key)
}
