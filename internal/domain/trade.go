package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/moznion/go-optional"
)

// Trade represents a single journaled trade.
type Trade struct {
	ID         string                   // Unique identifier for the trade
	Timestamp  int64                    // Exit time in epoch milliseconds, the ordering key
	Symbol     string                   // Trading symbol (e.g., "SOL-PERP")
	Side       Side                     // long or short
	EntryPrice float64                  // Price at which the position was entered
	ExitPrice  optional.Option[float64] // Price at which the position was exited (None while open)
	Size       float64                  // Position size
	PnL        float64                  // Realized profit and loss, fees already netted
	Fees       float64                  // Fees paid for the trade
	OrderType  OrderType                // market, limit or stop
	Duration   float64                  // Holding time in seconds
	Notes      string                   // Free-form journal notes
	Tags       []string                 // Journal tags, order is not significant
	Signature  string                   // On-chain transaction signature
	Leverage   optional.Option[float64] // Leverage used, if known
	EntryTime  int64                    // Entry time in epoch milliseconds
	ExitTime   optional.Option[int64]   // Exit time in epoch milliseconds (None while open)
}

// IsCompleted reports whether the trade has been closed.
func (t Trade) IsCompleted() bool {
	return t.ExitPrice.IsSome()
}

// Notional returns the traded exposure, entry price times size.
func (t Trade) Notional() float64 {
	return t.EntryPrice * t.Size
}

// ExitAt returns the trade timestamp as a time in the given location.
// A nil location means time.Local.
func (t Trade) ExitAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(t.Timestamp).In(loc)
}

// HasTag reports whether the trade carries the given tag.
func (t Trade) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Validate checks the invariants a trade must satisfy before it is stored.
func (t Trade) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trade id must be set")
	}
	if t.Symbol == "" {
		return fmt.Errorf("trade %s: symbol must be set", t.ID)
	}
	if !t.Side.Valid() {
		return fmt.Errorf("trade %s: unknown side %q", t.ID, t.Side)
	}
	if !t.OrderType.Valid() {
		return fmt.Errorf("trade %s: unknown order type %q", t.ID, t.OrderType)
	}
	for name, v := range map[string]float64{
		"entry price": t.EntryPrice,
		"size":        t.Size,
		"pnl":         t.PnL,
		"fees":        t.Fees,
		"duration":    t.Duration,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("trade %s: %s must be finite", t.ID, name)
		}
	}
	if t.Size <= 0 {
		return fmt.Errorf("trade %s: size must be positive", t.ID)
	}
	if t.Fees < 0 {
		return fmt.Errorf("trade %s: fees cannot be negative", t.ID)
	}
	if t.Duration < 0 {
		return fmt.Errorf("trade %s: duration cannot be negative", t.ID)
	}
	return nil
}

// NormalizeTags trims tags, drops empty ones and duplicates, and sorts the
// rest. Tags form a set, so their order carries no meaning.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
