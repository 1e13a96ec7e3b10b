// Package filter narrows a trade list down to what the journal views show.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
)

// SideAll disables filtering by side.
const SideAll = "all"

// Options holds the trade list criteria. Unset criteria match every trade.
// Symbols, OrderTypes and Tags match when any listed value matches. Side
// accepts "", "all", "long" or "short".
type Options struct {
	Symbols []string
	// From and To bound Timestamp inclusively, in epoch milliseconds.
	From       optional.Option[int64]
	To         optional.Option[int64]
	Side       string
	OrderTypes []domain.OrderType
	MinPnL     optional.Option[float64]
	MaxPnL     optional.Option[float64]
	Tags       []string
	// Search matches symbol, id and notes, ignoring case.
	Search string
}

// Validate checks that the criteria can be applied.
func (o Options) Validate() error {
	if o.Side != "" && o.Side != SideAll && !domain.Side(o.Side).Valid() {
		return fmt.Errorf("unknown side %q", o.Side)
	}
	for _, orderType := range o.OrderTypes {
		if !orderType.Valid() {
			return fmt.Errorf("unknown order type %q", orderType)
		}
	}
	if o.From.IsSome() && o.To.IsSome() && o.From.Unwrap() > o.To.Unwrap() {
		return fmt.Errorf("date range start %d is after end %d", o.From.Unwrap(), o.To.Unwrap())
	}
	if o.MinPnL.IsSome() && o.MaxPnL.IsSome() && o.MinPnL.Unwrap() > o.MaxPnL.Unwrap() {
		return fmt.Errorf("minimum pnl %g is above maximum %g", o.MinPnL.Unwrap(), o.MaxPnL.Unwrap())
	}
	return nil
}

// IsZero reports whether no criterion is set.
func (o Options) IsZero() bool {
	return len(o.Symbols) == 0 && o.From.IsNone() && o.To.IsNone() &&
		(o.Side == "" || o.Side == SideAll) && len(o.OrderTypes) == 0 &&
		o.MinPnL.IsNone() && o.MaxPnL.IsNone() && len(o.Tags) == 0 &&
		strings.TrimSpace(o.Search) == ""
}

// Apply returns the trades matching every set criterion, in input order.
// The input slice is not modified.
func Apply(trades []domain.Trade, opts Options) []domain.Trade {
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	result := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if opts.matches(trade, query) {
			result = append(result, trade)
		}
	}
	return result
}

func (o Options) matches(trade domain.Trade, query string) bool {
	if len(o.Symbols) > 0 && !slices.Contains(o.Symbols, trade.Symbol) {
		return false
	}
	if o.From.IsSome() && trade.Timestamp < o.From.Unwrap() {
		return false
	}
	if o.To.IsSome() && trade.Timestamp > o.To.Unwrap() {
		return false
	}
	if o.Side != "" && o.Side != SideAll && string(trade.Side) != o.Side {
		return false
	}
	if len(o.OrderTypes) > 0 && !slices.Contains(o.OrderTypes, trade.OrderType) {
		return false
	}
	if o.MinPnL.IsSome() && trade.PnL < o.MinPnL.Unwrap() {
		return false
	}
	if o.MaxPnL.IsSome() && trade.PnL > o.MaxPnL.Unwrap() {
		return false
	}
	if len(o.Tags) > 0 && !slices.ContainsFunc(o.Tags, trade.HasTag) {
		return false
	}
	if query != "" &&
		!strings.Contains(strings.ToLower(trade.Symbol), query) &&
		!strings.Contains(strings.ToLower(trade.ID), query) &&
		!strings.Contains(strings.ToLower(trade.Notes), query) {
		return false
	}
	return true
}
