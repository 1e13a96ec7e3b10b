package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NotesRequest is the body of PATCH /trades/{id}/notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// TagsRequest is the body of PUT /trades/{id}/tags.
type TagsRequest struct {
	Tags []string `json:"tags"`
}

type handler struct {
	service JournalService
	logger  ports.Logger
}

func (h *handler) listTrades(w http.ResponseWriter, r *http.Request) {
	opts, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	trades, err := h.service.ListTrades(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]TradeResponse, 0, len(trades))
	for _, trade := range trades {
		out = append(out, newTradeResponse(trade))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getTrade(w http.ResponseWriter, r *http.Request) {
	trade, err := h.service.GetTrade(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTradeResponse(*trade))
}

func (h *handler) updateNotes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.UpdateTradeNote(r.Context(), mux.Vars(r)["id"], req.Notes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *handler) updateTags(w http.ResponseWriter, r *http.Request) {
	var req TagsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	tags, err := h.service.UpdateTradeTags(r.Context(), mux.Vars(r)["id"], req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TagsRequest{Tags: tags})
}

func (h *handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	opts, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.service.Report(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// TradeResponse is the JSON view of a trade. Optional fields are omitted
// while the trade is open or when they are unknown.
type TradeResponse struct {
	ID         string   `json:"id"`
	Timestamp  int64    `json:"timestamp"`
	Symbol     string   `json:"symbol"`
	Side       string   `json:"side"`
	EntryPrice float64  `json:"entryPrice"`
	ExitPrice  *float64 `json:"exitPrice,omitempty"`
	Size       float64  `json:"size"`
	PnL        float64  `json:"pnl"`
	Fees       float64  `json:"fees"`
	OrderType  string   `json:"orderType"`
	Duration   float64  `json:"duration"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags"`
	Signature  string   `json:"signature,omitempty"`
	Leverage   *float64 `json:"leverage,omitempty"`
	EntryTime  int64    `json:"entryTime"`
	ExitTime   *int64   `json:"exitTime,omitempty"`
}

func newTradeResponse(t domain.Trade) TradeResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TradeResponse{
		ID:         t.ID,
		Timestamp:  t.Timestamp,
		Symbol:     t.Symbol,
		Side:       string(t.Side),
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice.UnwrapAsPtr(),
		Size:       t.Size,
		PnL:        t.PnL,
		Fees:       t.Fees,
		OrderType:  string(t.OrderType),
		Duration:   t.Duration,
		Notes:      t.Notes,
		Tags:       tags,
		Signature:  t.Signature,
		Leverage:   t.Leverage.UnwrapAsPtr(),
		EntryTime:  t.EntryTime,
		ExitTime:   t.ExitTime.UnwrapAsPtr(),
	}
}

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %v: %w", err, ports.ErrInvalidRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"})
	case errors.Is(err, ports.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
	}
}
