package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/filter"
	"tradeJournal/internal/ports"
)

// parseFilter reads filter.Options from query parameters. List parameters
// accept comma-separated values and may be repeated.
func parseFilter(q url.Values) (filter.Options, error) {
	opts := filter.Options{
		Symbols: listParam(q, "symbols"),
		Side:    strings.ToLower(strings.TrimSpace(q.Get("side"))),
		Tags:    listParam(q, "tags"),
		Search:  q.Get("q"),
	}
	for _, orderType := range listParam(q, "orderTypes") {
		opts.OrderTypes = append(opts.OrderTypes, domain.OrderType(strings.ToLower(orderType)))
	}

	var err error
	if opts.From, err = intParam(q, "from"); err != nil {
		return opts, err
	}
	if opts.To, err = intParam(q, "to"); err != nil {
		return opts, err
	}
	if opts.MinPnL, err = floatParam(q, "minPnl"); err != nil {
		return opts, err
	}
	if opts.MaxPnL, err = floatParam(q, "maxPnl"); err != nil {
		return opts, err
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%v: %w", err, ports.ErrInvalidRequest)
	}
	return opts, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string) (optional.Option[int64], error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return optional.None[int64](), nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return optional.None[int64](), fmt.Errorf("%s must be epoch milliseconds, got %q: %w", key, raw, ports.ErrInvalidRequest)
	}
	return optional.Some(v), nil
}

func floatParam(q url.Values, key string) (optional.Option[float64], error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return optional.None[float64](), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return optional.None[float64](), fmt.Errorf("%s must be a number, got %q: %w", key, raw, ports.ErrInvalidRequest)
	}
	return optional.Some(v), nil
}
