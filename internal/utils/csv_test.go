package utils

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

const sampleCSV = `id,timestamp,symbol,side,entry_price,exit_price,size,pnl,fees,order_type,duration,notes,tags
t-1,1704619800000,SOL-PERP,Long,100.5,102.25,3,5.25,0.1,market,120,"Breakout, clean",breakout;momentum
,2024-01-07T10:30:00Z,BTC-PERP,short,42000,,0.01,0,0.05,LIMIT,,,
`

func TestReadTrades(t *testing.T) {
	trades, err := ReadTrades(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	first := trades[0]
	assert.Equal(t, "t-1", first.ID)
	assert.Equal(t, int64(1704619800000), first.Timestamp)
	assert.Equal(t, domain.SideLong, first.Side)
	assert.Equal(t, 100.5, first.EntryPrice)
	assert.Equal(t, optional.Some(102.25), first.ExitPrice)
	assert.Equal(t, 5.25, first.PnL)
	assert.Equal(t, domain.OrderTypeMarket, first.OrderType)
	assert.Equal(t, "Breakout, clean", first.Notes)
	assert.Equal(t, []string{"breakout", "momentum"}, first.Tags)
	assert.Equal(t, int64(1704619800000-120_000), first.EntryTime, "entry time falls back to timestamp minus duration")
	assert.True(t, first.ExitTime.IsNone())

	second := trades[1]
	_, err = uuid.Parse(second.ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, int64(1704623400000), second.Timestamp)
	assert.Equal(t, domain.OrderTypeLimit, second.OrderType)
	assert.False(t, second.IsCompleted())
	assert.Nil(t, second.Tags)
}

func TestReadTradesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "missing column", input: "id,timestamp,symbol\nx,1,SOL-PERP\n"},
		{
			name:  "bad number",
			input: "timestamp,symbol,side,entry_price,size,pnl,order_type\n1,SOL-PERP,long,abc,1,0,market\n",
		},
		{
			name:  "bad timestamp",
			input: "timestamp,symbol,side,entry_price,size,pnl,order_type\nyesterday,SOL-PERP,long,1,1,0,market\n",
		},
		{
			name:  "missing timestamp",
			input: "timestamp,symbol,side,entry_price,size,pnl,order_type\n,SOL-PERP,long,1,1,0,market\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTrades(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ports.ErrMalformedInput)
		})
	}
}

func TestWriteThenReadTrades(t *testing.T) {
	trades := []domain.Trade{
		{
			ID:         "t-1",
			Timestamp:  1704619800000,
			Symbol:     "SOL-PERP",
			Side:       domain.SideShort,
			EntryPrice: 0.1,
			ExitPrice:  optional.Some(0.3),
			Size:       1500,
			PnL:        -300.75,
			Fees:       0.45,
			OrderType:  domain.OrderTypeStop,
			Duration:   90,
			Notes:      "Stopped out",
			Tags:       []string{"stop", "news"},
			Signature:  "3vQx",
			Leverage:   optional.Some(5.0),
			EntryTime:  1704619710000,
			ExitTime:   optional.Some[int64](1704619800000),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, trades))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(TradeCSVHeader, ",")+"\n"))

	got, err := ReadTrades(&buf)
	require.NoError(t, err)
	assert.Equal(t, trades, got)
}

func TestTradesCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	trades, err := ReadTrades(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.NoError(t, WriteTradesToCSV(trades, path))
	got, err := ReadTradesFromCSV(path)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, trades[1].ID, got[1].ID)
}

func TestReadTradesFromMissingFile(t *testing.T) {
	_, err := ReadTradesFromCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
