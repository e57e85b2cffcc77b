package services

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/csvimport"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Category registry first since every other service resolves names through it
	container.Category = NewCategoryService(
		repos.CategoryRepo,
		WithDefaultCategoryName(cfg.DefaultCategoryName),
	)

	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Category)
	container.Reporting = NewReportingService(repos.TransactionRepo, container.Category)
	container.Import = NewImportService(
		container.Category,
		container.Transaction,
		WithCSVOptions(csvimport.Options{
			Delimiter:   cfg.CSVDelimiter,
			Encoding:    cfg.CSVEncoding,
			DateLayouts: cfg.CSVDateLayouts,
		}),
	)

	return container
}
