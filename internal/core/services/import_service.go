package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/csvimport"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// importService implements the ImportSvcFacade interface
type importService struct {
	BaseService
	categories   portssvc.CategorySvcFacade
	transactions portssvc.TransactionWriterSvc
	opts         csvimport.Options
}

// ImportServiceOption is a functional option for configuring the import service
type ImportServiceOption func(*importService)

// WithCSVOptions sets delimiter, encoding and date layouts used to read exports.
func WithCSVOptions(opts csvimport.Options) ImportServiceOption {
	return func(s *importService) {
		s.opts = opts
	}
}

// NewImportService creates a new CSV import service
func NewImportService(categories portssvc.CategorySvcFacade, transactions portssvc.TransactionWriterSvc, options ...ImportServiceOption) portssvc.ImportSvcFacade {
	svc := &importService{
		categories:   categories,
		transactions: transactions,
		opts:         csvimport.Options{Delimiter: ';'},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

func (s *importService) PreviewImport(ctx context.Context, r io.Reader) (*dto.ImportPreviewResponse, error) {
	def, err := s.categories.EnsureDefault(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve default category for import")
		return nil, fmt.Errorf("failed to resolve default category: %w", err)
	}

	normalizer, err := csvimport.NewNormalizer(def.CategoryID, s.opts)
	if err != nil {
		return nil, err
	}
	result, err := normalizer.Normalize(r)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportPreviewResponse{
		Total:  result.Total(),
		Valid:  len(result.Drafts),
		Failed: len(result.Errors),
		Drafts: make([]dto.ImportDraft, len(result.Drafts)),
		Errors: make([]dto.ImportRowError, len(result.Errors)),
	}
	for i, d := range result.Drafts {
		res.Drafts[i] = dto.ImportDraft{Row: d.Row, Transaction: dto.ToTransactionRequest(d.Transaction)}
	}
	for i, e := range result.Errors {
		res.Errors[i] = dto.ToImportRowError(e)
	}

	s.LogInfo(ctx, "Import previewed",
		slog.Int("total", res.Total),
		slog.Int("valid", res.Valid),
		slog.Int("failed", res.Failed))
	return res, nil
}

func (s *importService) CommitImport(ctx context.Context, req dto.CommitImportRequest) (*dto.CommitImportResponse, error) {
	res := &dto.CommitImportResponse{Results: make([]dto.ImportItemResult, 0, len(req.Drafts))}

	for _, draft := range req.Drafts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := dto.ImportItemResult{Row: draft.Row}
		created, err := s.transactions.CreateTransaction(ctx, draft.Transaction)
		if err != nil {
			item.Error = err.Error()
			res.Failed++
		} else {
			item.TransactionID = created.TransactionID
			res.Created++
		}
		res.Results = append(res.Results, item)
	}

	s.LogInfo(ctx, "Import committed", slog.Int("created", res.Created), slog.Int("failed", res.Failed))
	return res, nil
}
