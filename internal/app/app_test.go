package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favboard/favboard-api/internal/core/service"
	"github.com/favboard/favboard-api/internal/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "test",
		ShutdownTimeout: time.Second,
		StorageDriver:   "sqlite",
		Auth: config.AuthConfig{
			JWTSecret:  "secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), testConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorageClose_ReverseOrderAndJoinedErrors(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	s := &Storage{closers: []func(context.Context) error{
		func(context.Context) error { order = append(order, "db"); return nil },
		func(context.Context) error { order = append(order, "cache"); return boom },
	}}

	err := s.Close(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"cache", "db"}, order)
	assert.NoError(t, s.Close(context.Background()))
}

func TestNew_ServesLiveness(t *testing.T) {
	a := New(testConfig(), &Storage{Cache: service.NopPostCache{}}, zerolog.Nop(), WithRegistry(prometheus.NewRegistry()))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	closed := false
	storage := &Storage{
		Cache:   service.NopPostCache{},
		closers: []func(context.Context) error{func(context.Context) error { closed = true; return nil }},
	}
	a := New(cfg, storage, zerolog.Nop(), WithRegistry(prometheus.NewRegistry()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.Run(ctx))
	assert.True(t, closed)
}
