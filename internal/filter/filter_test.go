package filter

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"

	"tradeJournal/internal/domain"
)

func sampleTrades() []domain.Trade {
	return []domain.Trade{
		{ID: "a1", Timestamp: 1000, Symbol: "SOL-PERP", Side: domain.SideLong, PnL: 25, OrderType: domain.OrderTypeMarket, Tags: []string{"breakout"}, Notes: "Clean entry"},
		{ID: "b2", Timestamp: 2000, Symbol: "BTC-PERP", Side: domain.SideShort, PnL: -10, OrderType: domain.OrderTypeLimit, Tags: []string{"fomo", "revenge"}},
		{ID: "c3", Timestamp: 3000, Symbol: "SOL-PERP", Side: domain.SideShort, PnL: 0, OrderType: domain.OrderTypeStop},
		{ID: "d4", Timestamp: 4000, Symbol: "ETH-PERP", Side: domain.SideLong, PnL: 40, OrderType: domain.OrderTypeMarket, Notes: "Held through the SOL dump"},
	}
}

func ids(trades []domain.Trade) []string {
	out := make([]string, 0, len(trades))
	for _, trade := range trades {
		out = append(out, trade.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{name: "no criteria", opts: Options{}, want: []string{"a1", "b2", "c3", "d4"}},
		{name: "side all", opts: Options{Side: SideAll}, want: []string{"a1", "b2", "c3", "d4"}},
		{name: "symbols", opts: Options{Symbols: []string{"SOL-PERP", "ETH-PERP"}}, want: []string{"a1", "c3", "d4"}},
		{name: "inclusive date range", opts: Options{From: optional.Some[int64](2000), To: optional.Some[int64](3000)}, want: []string{"b2", "c3"}},
		{name: "open ended start", opts: Options{From: optional.Some[int64](3000)}, want: []string{"c3", "d4"}},
		{name: "short side", opts: Options{Side: "short"}, want: []string{"b2", "c3"}},
		{name: "order types", opts: Options{OrderTypes: []domain.OrderType{domain.OrderTypeLimit, domain.OrderTypeStop}}, want: []string{"b2", "c3"}},
		{name: "inclusive pnl bounds", opts: Options{MinPnL: optional.Some(0.0), MaxPnL: optional.Some(25.0)}, want: []string{"a1", "c3"}},
		{name: "any tag", opts: Options{Tags: []string{"revenge", "breakout"}}, want: []string{"a1", "b2"}},
		{name: "search symbol and notes", opts: Options{Search: " sol "}, want: []string{"a1", "c3", "d4"}},
		{name: "search id", opts: Options{Search: "B2"}, want: []string{"b2"}},
		{name: "criteria combine", opts: Options{Symbols: []string{"SOL-PERP"}, Side: "long"}, want: []string{"a1"}},
		{name: "nothing matches", opts: Options{Symbols: []string{"JUP-PERP"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sampleTrades(), tt.opts)))
		})
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	trades := sampleTrades()
	before := ids(trades)

	got := Apply(trades, Options{Side: "long"})
	got[0].ID = "changed"

	assert.Equal(t, before, ids(trades))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "empty", opts: Options{}},
		{name: "known values", opts: Options{Side: "short", OrderTypes: []domain.OrderType{domain.OrderTypeStop}}},
		{name: "unknown side", opts: Options{Side: "sideways"}, wantErr: true},
		{name: "unknown order type", opts: Options{OrderTypes: []domain.OrderType{"iceberg"}}, wantErr: true},
		{name: "reversed dates", opts: Options{From: optional.Some[int64](5), To: optional.Some[int64](1)}, wantErr: true},
		{name: "reversed pnl", opts: Options{MinPnL: optional.Some(5.0), MaxPnL: optional.Some(1.0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionsIsZero(t *testing.T) {
	assert.True(t, Options{}.IsZero())
	assert.True(t, Options{Side: SideAll, Search: "  "}.IsZero())
	assert.False(t, Options{MinPnL: optional.Some(0.0)}.IsZero())
}
