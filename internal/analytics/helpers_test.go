package analytics

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
)

// baseTime is a Sunday morning in UTC.
var baseTime = time.Date(2024, time.January, 7, 9, 30, 0, 0, time.UTC)

func closedTrade(id int, at time.Time, pnl float64) domain.Trade {
	return domain.Trade{
		ID:         fmt.Sprintf("trade-%d", id),
		Timestamp:  at.UnixMilli(),
		Symbol:     "SOL-PERP",
		Side:       domain.SideLong,
		EntryPrice: 100,
		ExitPrice:  optional.Some(101.0),
		Size:       2,
		PnL:        pnl,
		Fees:       1,
		OrderType:  domain.OrderTypeMarket,
		Duration:   60,
		EntryTime:  at.Add(-time.Minute).UnixMilli(),
		ExitTime:   optional.Some(at.UnixMilli()),
	}
}

func openTrade(id int, at time.Time) domain.Trade {
	trade := closedTrade(id, at, 0)
	trade.ExitPrice = optional.None[float64]()
	trade.ExitTime = optional.None[int64]()
	return trade
}

// pnlSeries builds closed trades one hour apart with the given PnLs.
func pnlSeries(pnls ...float64) []domain.Trade {
	trades := make([]domain.Trade, 0, len(pnls))
	for i, pnl := range pnls {
		trades = append(trades, closedTrade(i+1, baseTime.Add(time.Duration(i)*time.Hour), pnl))
	}
	return trades
}

func reversed(trades []domain.Trade) []domain.Trade {
	out := make([]domain.Trade, len(trades))
	for i, trade := range trades {
		out[len(trades)-1-i] = trade
	}
	return out
}
