package ports

import (
	"context"

	"tradeJournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journaled trades.
type TradeRepository interface {
	// CreateTrade saves a new trade record. A trade whose ID is already
	// stored fails with ErrDuplicateEntry.
	CreateTrade(ctx context.Context, trade *domain.Trade) error
	// FindAll retrieves all trades, ordered by timestamp descending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindByID retrieves a trade by its unique ID.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
	// UpdateNotes replaces the journal notes of a trade.
	UpdateNotes(ctx context.Context, id string, notes string) error
	// UpdateTags replaces the tag set of a trade.
	UpdateTags(ctx context.Context, id string, tags []string) error
}

// MetricsRecorder receives journal activity for monitoring.
type MetricsRecorder interface {
	// RecordReport records a report build and the number of trades it covered.
	RecordReport(err error, trades int, duration float64)
	// RecordImport adds imported trades to the import counter.
	RecordImport(count int)
}
