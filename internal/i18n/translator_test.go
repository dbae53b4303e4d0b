package i18n

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeStore struct {
	values map[string]map[string]string // lang -> key -> value
	err    error
}

func (s *fakeStore) Lookup(_ context.Context, lang, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if v, ok := s.values[lang][key]; ok {
		return v, nil
	}
	return "", ErrNotFound
}

func newTestTranslator(store Store) *Translator {
	return NewTranslator(store, nil, "en", time.Hour, zap.NewNop())
}

func TestTranslatorResolution(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{values: map[string]map[string]string{
		"en": {"booking_not_found": "booking not found"},
		"hr": {"booking_not_found": "rezervacija nije pronađena"},
	}}
	tr := newTestTranslator(store)

	t.Run("requested language", func(t *testing.T) {
		assert.Equal(t, "rezervacija nije pronađena", tr.T(ctx, "hr", "booking_not_found", "fallback"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		store.values["en"]["time_slot_taken"] = "time slot already booked"
		assert.Equal(t, "time slot already booked", tr.T(ctx, "hr", "time_slot_taken", "fallback"))
	})

	t.Run("falls back to provided text", func(t *testing.T) {
		assert.Equal(t, "fallback", tr.T(ctx, "hr", "unknown_key", "fallback"))
	})

	t.Run("empty language uses default", func(t *testing.T) {
		assert.Equal(t, "booking not found", tr.T(ctx, "", "booking_not_found", "fallback"))
	})

	t.Run("empty key returns fallback", func(t *testing.T) {
		assert.Equal(t, "fallback", tr.T(ctx, "en", "", "fallback"))
	})
}

func TestTranslatorStoreFailure(t *testing.T) {
	// Lookup failures must never surface to the caller.
	tr := newTestTranslator(&fakeStore{err: errors.New("connection refused")})
	assert.Equal(t, "fallback", tr.T(context.Background(), "en", "any_key", "fallback"))
}
