package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/wopihost/internal/config"
	"github.com/allisson/wopihost/internal/metrics"
)

func newTestConfig() *config.Config {
	return &config.Config{
		LogLevel:            "info",
		DBDriver:            "invalid_driver",
		ServerHost:          "localhost",
		ServerPort:          8080,
		WOPITokenTTL:        time.Hour,
		WOPIJanitorInterval: time.Minute,
		WOPIHostURL:         "https://host.example.com",
		WOPIEditorURL:       "https://office.example.com",
		ContentStoreURL:     "mem://",
		AuthJWTSecret:       "test-secret",
		AuthJWTExpiration:   time.Hour,
		MetricsNamespace:    "wopihost",
		MetricsPort:         8081,
	}
}

func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.LogLevel = level
			container := NewContainer(cfg)

			assert.Nil(t, container.logger)
			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_DBErrorIsSticky(t *testing.T) {
	container := NewContainer(newTestConfig())

	_, err := container.DB()
	require.Error(t, err)

	_, err2 := container.DB()
	assert.Equal(t, err, err2)

	_, err = container.DocumentUseCase()
	assert.ErrorContains(t, err, "failed to connect to database")

	_, err = container.HTTPServer()
	assert.Error(t, err)
}

func TestContainer_WOPIComponents(t *testing.T) {
	container := NewContainer(newTestConfig())

	urls, err := container.URLBuilder()
	require.NoError(t, err)
	assert.Equal(t, "https://office.example.com", urls.ServiceURL())

	store, err := container.TokenStore()
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	sameStore, err := container.TokenStore()
	require.NoError(t, err)
	assert.Same(t, store, sameStore)

	assert.Same(t, container.Clock(), container.Clock())

	janitor, err := container.TokenJanitor()
	require.NoError(t, err)
	assert.Equal(t, 0, janitor.Sweep(context.Background()))
}

func TestContainer_URLBuilderError(t *testing.T) {
	cfg := newTestConfig()
	cfg.WOPIHostURL = "not a url"
	container := NewContainer(cfg)

	_, err := container.URLBuilder()
	assert.ErrorContains(t, err, "failed to create url builder")
}

func TestContainer_TokenService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		tokenService, err := container.TokenService()
		require.NoError(t, err)

		issued, err := tokenService.Issue("alice")
		require.NoError(t, err)

		userID, err := tokenService.Verify(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", userID)
	})

	t.Run("Error_MissingSecret", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.AuthJWTSecret = ""
		container := NewContainer(cfg)

		_, err := container.TokenService()
		assert.ErrorContains(t, err, "failed to create token service")
	})
}

func TestContainer_ContentStore(t *testing.T) {
	container := NewContainer(newTestConfig())

	store, err := container.ContentStore()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "doc", []byte("hello"), "text/plain"))
	data, err := store.Read(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	assert.NoError(t, container.Shutdown(ctx))
}

func TestContainer_Metrics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		require.NotNil(t, provider)

		_, err = container.TokenStore()
		require.NoError(t, err)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, server)

		assert.NoError(t, container.Shutdown(context.Background()))
	})
}

func TestContainer_ShutdownWithoutComponents(t *testing.T) {
	container := NewContainer(newTestConfig())
	assert.NoError(t, container.Shutdown(context.Background()))
}

func TestLazy(t *testing.T) {
	var l lazy[int]
	calls := 0
	boom := errors.New("boom")

	init := func() (int, error) {
		calls++
		return 0, boom
	}

	_, err := l.get(init)
	assert.ErrorIs(t, err, boom)
	_, err = l.get(init)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.False(t, l.ready)
}
