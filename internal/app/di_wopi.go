package app

import (
	"fmt"

	"github.com/allisson/wopihost/internal/metrics"
	wopiHTTP "github.com/allisson/wopihost/internal/wopi/http"
	wopiService "github.com/allisson/wopihost/internal/wopi/service"
	wopiUseCase "github.com/allisson/wopihost/internal/wopi/usecase"
)

type wopiComponents struct {
	clock           lazy[wopiService.Clock]
	urlBuilder      lazy[*wopiService.URLBuilder]
	tokenStore      lazy[wopiUseCase.TokenStore]
	lockCoordinator lazy[wopiUseCase.LockCoordinator]
	sessionFacade   lazy[wopiUseCase.SessionFacade]
	tokenJanitor    lazy[*wopiUseCase.TokenJanitor]
	wopiHandler     lazy[*wopiHTTP.WOPIHandler]
}

// Clock returns the monotonic clock shared by the token store and the lock coordinator.
func (c *Container) Clock() wopiService.Clock {
	clock, _ := c.clock.get(func() (wopiService.Clock, error) {
		return wopiService.NewMonotonicClock(nil), nil
	})
	return clock
}

// URLBuilder returns the builder for WOPISrc and editor URLs.
func (c *Container) URLBuilder() (*wopiService.URLBuilder, error) {
	return c.urlBuilder.get(c.initURLBuilder)
}

// TokenStore returns the in-memory access token store.
func (c *Container) TokenStore() (wopiUseCase.TokenStore, error) {
	return c.tokenStore.get(c.initTokenStore)
}

// LockCoordinator returns the collaborative lock coordinator.
func (c *Container) LockCoordinator() (wopiUseCase.LockCoordinator, error) {
	return c.lockCoordinator.get(c.initLockCoordinator)
}

// SessionFacade returns the WOPI session facade.
func (c *Container) SessionFacade() (wopiUseCase.SessionFacade, error) {
	return c.sessionFacade.get(c.initSessionFacade)
}

// TokenJanitor returns the background purger of expired access tokens.
func (c *Container) TokenJanitor() (*wopiUseCase.TokenJanitor, error) {
	return c.tokenJanitor.get(c.initTokenJanitor)
}

// WOPIHandler returns the WOPI HTTP handler.
func (c *Container) WOPIHandler() (*wopiHTTP.WOPIHandler, error) {
	return c.wopiHandler.get(c.initWOPIHandler)
}

func (c *Container) initURLBuilder() (*wopiService.URLBuilder, error) {
	urls, err := wopiService.NewURLBuilder(c.config.WOPIHostURL, c.config.WOPIEditorURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create url builder: %w", err)
	}
	return urls, nil
}

func (c *Container) initTokenStore() (wopiUseCase.TokenStore, error) {
	generator := wopiService.NewTokenGenerator()
	if err := wopiService.CheckTokenGenerator(generator); err != nil {
		return nil, fmt.Errorf("token generator unavailable: %w", err)
	}

	store := wopiUseCase.NewTokenStore(generator, c.Clock(), c.config.WOPITokenTTL, c.Logger())

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for token store: %w", err)
	}
	if provider != nil {
		if err := metrics.RegisterActiveTokensGauge(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
			store.Len,
		); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func (c *Container) initLockCoordinator() (wopiUseCase.LockCoordinator, error) {
	documents, err := c.DocumentReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get document reader for lock coordinator: %w", err)
	}

	baseCoordinator := wopiUseCase.NewLockCoordinator(documents, c.Clock(), c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for lock coordinator: %w", err)
		}
		return wopiUseCase.NewLockCoordinatorWithMetrics(baseCoordinator, businessMetrics), nil
	}

	return baseCoordinator, nil
}

func (c *Container) initSessionFacade() (wopiUseCase.SessionFacade, error) {
	tokens, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for session facade: %w", err)
	}

	locks, err := c.LockCoordinator()
	if err != nil {
		return nil, fmt.Errorf("failed to get lock coordinator for session facade: %w", err)
	}

	documents, err := c.DocumentReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get document reader for session facade: %w", err)
	}

	urls, err := c.URLBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to get url builder for session facade: %w", err)
	}

	baseFacade := wopiUseCase.NewSessionFacade(tokens, locks, documents, urls, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session facade: %w", err)
		}
		return wopiUseCase.NewSessionFacadeWithMetrics(baseFacade, businessMetrics), nil
	}

	return baseFacade, nil
}

func (c *Container) initTokenJanitor() (*wopiUseCase.TokenJanitor, error) {
	tokens, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for token janitor: %w", err)
	}
	return wopiUseCase.NewTokenJanitor(c.config.WOPIJanitorInterval, tokens, c.Logger()), nil
}

func (c *Container) initWOPIHandler() (*wopiHTTP.WOPIHandler, error) {
	sessions, err := c.SessionFacade()
	if err != nil {
		return nil, fmt.Errorf("failed to get session facade for wopi handler: %w", err)
	}

	documents, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for wopi handler: %w", err)
	}

	urls, err := c.URLBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to get url builder for wopi handler: %w", err)
	}

	return wopiHTTP.NewWOPIHandler(sessions, documents, urls, c.Logger()), nil
}
