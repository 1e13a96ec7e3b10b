package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"tradeJournal/config"
	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/filter"
	"tradeJournal/internal/ports"
)

// JournalService orchestrates trade storage, filtering and analytics.
type JournalService struct {
	logger   ports.Logger
	repo     ports.TradeRepository
	metrics  ports.MetricsRecorder
	location *time.Location
}

// NewJournalService creates a new application service instance.
// metrics may be nil when monitoring is disabled.
func NewJournalService(
	cfg *config.Config,
	logger ports.Logger,
	repo ports.TradeRepository,
	metrics ports.MetricsRecorder,
) (*JournalService, error) {
	// Validate dependencies
	if cfg == nil || logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService: %w", ports.ErrConfigurationError)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &JournalService{
		logger:   logger,
		repo:     repo,
		metrics:  metrics,
		location: location,
	}, nil
}

// Report builds the full analytics report over the trades matching opts.
func (s *JournalService) Report(ctx context.Context, opts filter.Options) (*analytics.Report, error) {
	start := time.Now()

	trades, err := s.filteredTrades(ctx, opts)
	if err != nil {
		s.metrics.RecordReport(err, 0, 0)
		return nil, err
	}

	report := analytics.Analyze(trades, analytics.WithLocation(s.location))
	elapsed := time.Since(start)
	s.metrics.RecordReport(nil, len(trades), elapsed.Seconds())
	s.logger.Debug(ctx, "Analytics report built", map[string]interface{}{
		"trades":     len(trades),
		"completed":  report.Metrics.TradeCount,
		"durationMs": elapsed.Milliseconds(),
	})
	return &report, nil
}

// ListTrades returns the trades matching opts, newest first.
func (s *JournalService) ListTrades(ctx context.Context, opts filter.Options) ([]domain.Trade, error) {
	trades, err := s.filteredTrades(ctx, opts)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(trades, func(a, b domain.Trade) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	return trades, nil
}

// GetTrade returns one trade by id.
func (s *JournalService) GetTrade(ctx context.Context, id string) (*domain.Trade, error) {
	trade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load trade", map[string]interface{}{"tradeID": id})
		return nil, err
	}
	if trade == nil {
		return nil, fmt.Errorf("trade %s: %w", id, ports.ErrNotFound)
	}
	return trade, nil
}

// ImportTrades validates and stores trades. The whole batch is validated
// before anything is written. It returns how many trades were stored
// before the first failure.
func (s *JournalService) ImportTrades(ctx context.Context, trades []domain.Trade) (int, error) {
	for i, trade := range trades {
		if err := trade.Validate(); err != nil {
			return 0, fmt.Errorf("trade %d: %v: %w", i+1, err, ports.ErrInvalidRequest)
		}
	}

	imported := 0
	defer func() { s.metrics.RecordImport(imported) }()

	for _, trade := range trades {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		trade.Tags = domain.NormalizeTags(trade.Tags)
		if err := s.repo.CreateTrade(ctx, &trade); err != nil {
			if errors.Is(err, ports.ErrDuplicateEntry) {
				s.logger.Warn(ctx, "Duplicate trade skipped import", map[string]interface{}{"tradeID": trade.ID})
			} else {
				s.logger.Error(ctx, err, "Failed to store trade", map[string]interface{}{"tradeID": trade.ID})
			}
			return imported, err
		}
		imported++
	}

	s.logger.Info(ctx, "Trades imported", map[string]interface{}{"count": imported})
	return imported, nil
}

// UpdateTradeNote replaces the journal notes of a trade.
func (s *JournalService) UpdateTradeNote(ctx context.Context, id, notes string) error {
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.Error(ctx, err, "Failed to update trade notes", map[string]interface{}{"tradeID": id})
		}
		return err
	}
	s.logger.Info(ctx, "Trade notes updated", map[string]interface{}{"tradeID": id})
	return nil
}

// UpdateTradeTags replaces the tag set of a trade and returns the stored,
// normalised tags.
func (s *JournalService) UpdateTradeTags(ctx context.Context, id string, tags []string) ([]string, error) {
	normalized := domain.NormalizeTags(tags)
	if err := s.repo.UpdateTags(ctx, id, normalized); err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.Error(ctx, err, "Failed to update trade tags", map[string]interface{}{"tradeID": id})
		}
		return nil, err
	}
	s.logger.Info(ctx, "Trade tags updated", map[string]interface{}{"tradeID": id, "tags": normalized})
	return normalized, nil
}

func (s *JournalService) filteredTrades(ctx context.Context, opts filter.Options) ([]domain.Trade, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrInvalidRequest)
	}

	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load trades")
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(stored))
	for _, trade := range stored {
		trades = append(trades, *trade)
	}
	return filter.Apply(trades, opts), nil
}

type noopMetrics struct{}

func (noopMetrics) RecordReport(error, int, float64) {}
func (noopMetrics) RecordImport(int)                 {}
