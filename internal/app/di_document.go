package app

import (
	"context"
	"fmt"

	documentHTTP "github.com/allisson/wopihost/internal/document/http"
	documentRepository "github.com/allisson/wopihost/internal/document/repository"
	documentService "github.com/allisson/wopihost/internal/document/service"
	documentUseCase "github.com/allisson/wopihost/internal/document/usecase"
)

type documentComponents struct {
	contentStore       lazy[documentService.ContentStore]
	documentRepository lazy[documentUseCase.DocumentRepository]
	documentReader     lazy[*documentUseCase.DocumentReader]
	documentUseCase    lazy[documentUseCase.DocumentUseCase]
	documentHandler    lazy[*documentHTTP.DocumentHandler]
}

// ContentStore returns the blob-backed content store, sealed with the configured keeper.
func (c *Container) ContentStore() (documentService.ContentStore, error) {
	return c.contentStore.get(c.initContentStore)
}

// DocumentRepository returns the document repository for the configured driver.
func (c *Container) DocumentRepository() (documentUseCase.DocumentRepository, error) {
	return c.documentRepository.get(c.initDocumentRepository)
}

// DocumentReader returns the adapter the lock coordinator reads lock state through.
func (c *Container) DocumentReader() (*documentUseCase.DocumentReader, error) {
	return c.documentReader.get(c.initDocumentReader)
}

// DocumentUseCase returns the document use case, guarded by the collaborative lock
// coordinator.
func (c *Container) DocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	return c.documentUseCase.get(c.initDocumentUseCase)
}

// DocumentHandler returns the document HTTP handler.
func (c *Container) DocumentHandler() (*documentHTTP.DocumentHandler, error) {
	return c.documentHandler.get(c.initDocumentHandler)
}

func (c *Container) initContentStore() (documentService.ContentStore, error) {
	ctx := context.Background()

	keeper, err := documentService.OpenKeeper(ctx, c.config.ContentKeeperURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open content keeper: %w", err)
	}

	store, err := documentService.NewContentStore(ctx, c.config.ContentStoreURL, keeper)
	if err != nil {
		if keeper != nil {
			_ = keeper.Close()
		}
		return nil, fmt.Errorf("failed to open content store: %w", err)
	}
	return store, nil
}

func (c *Container) initDocumentRepository() (documentUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return documentRepository.NewPostgreSQLDocumentRepository(db), nil
	case "mysql":
		return documentRepository.NewMySQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initDocumentReader() (*documentUseCase.DocumentReader, error) {
	repo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document reader: %w", err)
	}
	return documentUseCase.NewDocumentReader(repo), nil
}

func (c *Container) initDocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for document use case: %w", err)
	}

	repo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	store, err := c.ContentStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get content store for document use case: %w", err)
	}

	lockCoordinator, err := c.LockCoordinator()
	if err != nil {
		return nil, fmt.Errorf("failed to get lock coordinator for document use case: %w", err)
	}

	baseUseCase := documentUseCase.NewDocumentUseCase(txManager, repo, store, lockCoordinator, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
		}
		return documentUseCase.NewDocumentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initDocumentHandler() (*documentHTTP.DocumentHandler, error) {
	useCase, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for document handler: %w", err)
	}
	return documentHTTP.NewDocumentHandler(useCase, c.Logger()), nil
}
