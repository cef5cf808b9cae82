package statement

import (
	"context"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MonthlySummaryResponse is one month of revenue in API responses
type MonthlySummaryResponse struct {
	Month   string        `json:"month"`
	Revenue shared.Amount `json:"revenue"`
	Count   int           `json:"count"`
	Tax     shared.Amount `json:"tax"`
}

// MonthlySummariesResponse wraps the summaries as {data: [...]}
type MonthlySummariesResponse struct {
	Data []MonthlySummaryResponse `json:"data"`
}

// StatementService computes per-month revenue reports
type StatementService struct {
	billRepo billing.BillRepository
	cache    billing.SummaryCache
}

// NewStatementService creates a new StatementService. cache may be nil.
func NewStatementService(billRepo billing.BillRepository, cache billing.SummaryCache) *StatementService {
	return &StatementService{
		billRepo: billRepo,
		cache:    cache,
	}
}

// MonthlySummaries returns the account's revenue grouped by calendar month, ascending
func (s *StatementService) MonthlySummaries(ctx context.Context, accountID uuid.UUID) (*MonthlySummariesResponse, error) {
	log := logger.L(ctx)

	// The generation is read before the bills so a concurrent mutation
	// makes the write-back below a no-op.
	cacheable := false
	var generation int64
	if s.cache != nil {
		cached, gen, ok, err := s.cache.Get(ctx, accountID)
		switch {
		case err != nil:
			log.Warn("Monthly summary cache read failed", zap.Error(err))
		case ok:
			return toResponse(cached), nil
		default:
			cacheable, generation = true, gen
		}
	}

	bills, err := s.billRepo.FindAllUnpaged(ctx, accountID)
	if err != nil {
		return nil, err
	}
	summaries := billing.SummarizeByMonth(bills)

	if cacheable {
		if err := s.cache.Set(ctx, accountID, generation, summaries); err != nil {
			log.Warn("Monthly summary cache write failed", zap.Error(err))
		}
	}

	return toResponse(summaries), nil
}

func toResponse(summaries []billing.MonthlySummary) *MonthlySummariesResponse {
	data := make([]MonthlySummaryResponse, len(summaries))
	for i, m := range summaries {
		data[i] = MonthlySummaryResponse{
			Month:   m.Month,
			Revenue: shared.NewAmount(m.Revenue),
			Count:   m.Count,
			Tax:     shared.NewAmount(m.Tax),
		}
	}
	return &MonthlySummariesResponse{Data: data}
}
