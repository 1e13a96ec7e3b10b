package domain

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
)

func validTrade() Trade {
	return Trade{
		ID:         "t-1",
		Timestamp:  1_704_619_800_000,
		Symbol:     "SOL-PERP",
		Side:       SideLong,
		EntryPrice: 100,
		ExitPrice:  optional.Some(105.0),
		Size:       2,
		PnL:        9.5,
		Fees:       0.5,
		OrderType:  OrderTypeLimit,
		Duration:   30,
		Tags:       []string{"breakout"},
	}
}

func TestTradeHelpers(t *testing.T) {
	trade := validTrade()

	assert.True(t, trade.IsCompleted())
	assert.Equal(t, 200.0, trade.Notional())
	assert.True(t, trade.HasTag("breakout"))
	assert.False(t, trade.HasTag("Breakout"))
	assert.Equal(t, time.Date(2024, 1, 7, 9, 30, 0, 0, time.UTC), trade.ExitAt(time.UTC))
	assert.Equal(t, time.Local, trade.ExitAt(nil).Location())

	trade.ExitPrice = optional.None[float64]()
	assert.False(t, trade.IsCompleted())
}

func TestTradeValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trade)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Trade) {}},
		{name: "open trade", mutate: func(tr *Trade) { tr.ExitPrice = optional.None[float64]() }},
		{name: "negative pnl", mutate: func(tr *Trade) { tr.PnL = -40 }},
		{name: "missing id", mutate: func(tr *Trade) { tr.ID = "" }, wantErr: true},
		{name: "missing symbol", mutate: func(tr *Trade) { tr.Symbol = "" }, wantErr: true},
		{name: "unknown side", mutate: func(tr *Trade) { tr.Side = "flat" }, wantErr: true},
		{name: "unknown order type", mutate: func(tr *Trade) { tr.OrderType = "twap" }, wantErr: true},
		{name: "zero size", mutate: func(tr *Trade) { tr.Size = 0 }, wantErr: true},
		{name: "negative fees", mutate: func(tr *Trade) { tr.Fees = -1 }, wantErr: true},
		{name: "negative duration", mutate: func(tr *Trade) { tr.Duration = -5 }, wantErr: true},
		{name: "nan pnl", mutate: func(tr *Trade) { tr.PnL = math.NaN() }, wantErr: true},
		{name: "infinite price", mutate: func(tr *Trade) { tr.EntryPrice = math.Inf(1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := validTrade()
			tt.mutate(&trade)
			err := trade.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"fomo", "scalp"}, NormalizeTags([]string{" scalp", "fomo", "", "scalp ", "  "}))
	assert.Empty(t, NormalizeTags(nil))
	assert.NotNil(t, NormalizeTags(nil))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, SideShort.Valid())
	assert.False(t, Side("Long").Valid())
	for _, orderType := range OrderTypes {
		assert.True(t, orderType.Valid())
	}
	assert.False(t, OrderType("").Valid())
}
