package services

import (
	"context"
	"io"

	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// ImportSvcFacade defines the two-step CSV import: preview, then commit
type ImportSvcFacade interface {
	// PreviewImport normalizes a bank export without storing anything.
	PreviewImport(ctx context.Context, r io.Reader) (*dto.ImportPreviewResponse, error)

	// CommitImport stores confirmed drafts one at a time and reports each outcome.
	// Earlier successes are kept when a later draft fails.
	CommitImport(ctx context.Context, req dto.CommitImportRequest) (*dto.CommitImportResponse, error)
}
