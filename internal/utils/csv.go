package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// TradeCSVHeader is the column order written by WriteTrades.
var TradeCSVHeader = []string{
	"id", "timestamp", "symbol", "side", "entry_price", "exit_price", "size", "pnl", "fees",
	"order_type", "duration", "entry_time", "exit_time", "leverage", "signature", "notes", "tags",
}

var requiredColumns = []string{"timestamp", "symbol", "side", "entry_price", "size", "pnl", "order_type"}

// tagSeparator joins tags inside the single tags column.
const tagSeparator = ";"

// ReadTradesFromCSV reads trades from a CSV file with a header row.
func ReadTradesFromCSV(filename string) ([]domain.Trade, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadTrades(file)
}

// ReadTrades parses trades from CSV. Columns are matched by header name, so
// their order is free and unknown columns are ignored. Timestamps accept
// epoch milliseconds or RFC 3339. Rows without an id get a random UUID.
func ReadTrades(r io.Reader) ([]domain.Trade, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV input: %w", ports.ErrMalformedInput)
		}
		return nil, fmt.Errorf("failed to read CSV header: %v: %w", err, ports.ErrMalformedInput)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q: %w", name, ports.ErrMalformedInput)
		}
	}

	var trades []domain.Trade
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %v: %w", err, ports.ErrMalformedInput)
		}
		line, _ := reader.FieldPos(0)

		trade, err := parseRecord(row{index: index, record: record})
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, ports.ErrMalformedInput)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

type row struct {
	index  map[string]int
	record []string
}

func (r row) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) float(column string) (float64, error) {
	raw := r.get(column)
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, raw)
	}
	return d.InexactFloat64(), nil
}

func (r row) optionalFloat(column string) (optional.Option[float64], error) {
	if r.get(column) == "" {
		return optional.None[float64](), nil
	}
	v, err := r.float(column)
	if err != nil {
		return optional.None[float64](), err
	}
	return optional.Some(v), nil
}

func (r row) millis(column string) (optional.Option[int64], error) {
	raw := r.get(column)
	if raw == "" {
		return optional.None[int64](), nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return optional.Some(ms), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return optional.None[int64](), fmt.Errorf("invalid %s %q", column, raw)
	}
	return optional.Some(t.UnixMilli()), nil
}

func parseRecord(r row) (domain.Trade, error) {
	trade := domain.Trade{
		ID:        r.get("id"),
		Symbol:    r.get("symbol"),
		Side:      domain.Side(strings.ToLower(r.get("side"))),
		OrderType: domain.OrderType(strings.ToLower(r.get("order_type"))),
		Signature: r.get("signature"),
		Notes:     r.get("notes"),
		Tags:      splitTags(r.get("tags")),
	}
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	timestamp, err := r.millis("timestamp")
	if err != nil {
		return trade, err
	}
	if timestamp.IsNone() {
		return trade, fmt.Errorf("timestamp is required")
	}
	trade.Timestamp = timestamp.Unwrap()

	for column, dst := range map[string]*float64{
		"entry_price": &trade.EntryPrice,
		"size":        &trade.Size,
		"pnl":         &trade.PnL,
		"fees":        &trade.Fees,
		"duration":    &trade.Duration,
	} {
		if *dst, err = r.float(column); err != nil {
			return trade, err
		}
	}
	if trade.ExitPrice, err = r.optionalFloat("exit_price"); err != nil {
		return trade, err
	}
	if trade.Leverage, err = r.optionalFloat("leverage"); err != nil {
		return trade, err
	}
	if trade.ExitTime, err = r.millis("exit_time"); err != nil {
		return trade, err
	}
	entryTime, err := r.millis("entry_time")
	if err != nil {
		return trade, err
	}
	trade.EntryTime = entryTime.TakeOr(trade.Timestamp - int64(trade.Duration*1000))

	return trade, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, tagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// WriteTradesToCSV writes trades to a CSV file, replacing any existing file.
func WriteTradesToCSV(trades []domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteTrades(file, trades)
}

// WriteTrades writes trades as CSV in TradeCSVHeader column order.
func WriteTrades(w io.Writer, trades []domain.Trade) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(TradeCSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		record := []string{
			t.ID,
			strconv.FormatInt(t.Timestamp, 10),
			t.Symbol,
			string(t.Side),
			formatFloat(t.EntryPrice),
			formatOptionalFloat(t.ExitPrice),
			formatFloat(t.Size),
			formatFloat(t.PnL),
			formatFloat(t.Fees),
			string(t.OrderType),
			formatFloat(t.Duration),
			strconv.FormatInt(t.EntryTime, 10),
			formatOptionalInt(t.ExitTime),
			formatOptionalFloat(t.Leverage),
			t.Signature,
			t.Notes,
			strings.Join(t.Tags, tagSeparator),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func formatOptionalFloat(v optional.Option[float64]) string {
	if v.IsNone() {
		return ""
	}
	return formatFloat(v.Unwrap())
}

func formatOptionalInt(v optional.Option[int64]) string {
	if v.IsNone() {
		return ""
	}
	return strconv.FormatInt(v.Unwrap(), 10)
}
