package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"spendboard/internal/core"
	"spendboard/internal/export"
	"spendboard/internal/ledger"
	"spendboard/internal/log"
)

type submitRequest struct {
	Payer    string `json:"name"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Method   string `json:"payment_method"`
	Category string `json:"category"`
	CardType string `json:"card_type"`
}

type recordResponse struct {
	Payer    string `json:"name"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Method   string `json:"payment_method"`
	Category string `json:"category,omitempty"`
	CardType string `json:"card_type,omitempty"`
}

type entryResponse struct {
	Rank    int    `json:"rank"`
	Key     string `json:"key"`
	Total   string `json:"total"`
	Count   int    `json:"count"`
	Average string `json:"average"`
}

type summaryResponse struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleSubmitExpense(w, r)
	case http.MethodGet:
		s.handleListExpenses(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	}
}

func (s *Server) handleSubmitExpense(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	ref, err := s.board.SubmitExpense(r.Context(), rec)
	if err != nil {
		var pe *ledger.PersistError
		switch {
		case errors.As(err, &pe):
			s.logger.ErrorContext(r.Context(), "Failed to persist expense",
				log.FieldOperation, log.OpSubmit,
				log.FieldPayer, rec.Payer,
				log.FieldAmountCents, rec.Amount.Cents,
				log.FieldError, err)
			writeError(w, http.StatusBadGateway, "persist_error", "expense could not be durably recorded")
		default:
			writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"row_ref": ref})
}

func (req submitRequest) toRecord() (core.ExpenseRecord, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	method, err := core.ParsePaymentMethod(req.Method)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	rec := core.ExpenseRecord{
		Payer:    strings.TrimSpace(req.Payer),
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Method:   method,
		Category: strings.TrimSpace(req.Category),
		CardType: strings.TrimSpace(req.CardType),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	return rec, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records := s.board.Records()
	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = recordResponse{
			Payer:    rec.Payer,
			Amount:   rec.Amount.Format(),
			Date:     rec.Date.String(),
			Method:   string(rec.Method),
			Category: rec.Category,
			CardType: rec.CardType,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	dim, ok := core.ParseDimension(r.URL.Query().Get("dimension"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "unknown dimension")
		return
	}
	key := core.SortByTotal
	if v := r.URL.Query().Get("sort"); v != "" {
		if key, ok = core.ParseSortKey(v); !ok {
			writeError(w, http.StatusBadRequest, "bad_request", "unknown sort key")
			return
		}
	}
	topN := s.topN
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive number")
			return
		}
		topN = n
	}

	entries := s.board.Leaderboard(dim, key, topN)
	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	topN := s.topN
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			topN = n
		}
	}

	d, err := s.board.Dashboard(r.Context(), topN)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard computation failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	boards := make(map[string][]entryResponse, len(d.Leaderboards))
	for dim, entries := range d.Leaderboards {
		boards[string(dim)] = toEntryResponses(entries)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":      toSummaryResponse(d.Summary),
		"leaderboards": boards,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	resp := map[string]any{"summary": toSummaryResponse(s.board.Summary())}
	if h, ok := s.board.Highlights(); ok {
		resp["highlights"] = map[string]any{
			"top_spender":         h.TopSpender,
			"top_spender_total":   h.TopSpenderTotal.Format(),
			"most_frequent":       h.MostFrequent,
			"most_frequent_count": h.MostFrequentN,
			"top_category":        h.TopCategory,
			"top_category_total":  h.TopCategoryTot.Format(),
			"average":             h.Average.Format(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	// Build the workbook fully before committing headers, so a build
	// failure can still surface as a 500 instead of a truncated 200.
	var buf bytes.Buffer
	if err := export.WriteTo(&buf, s.board.Records(), s.topN); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to build export workbook",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="spendboard.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to write export response",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
	}
}

func toEntryResponses(entries []core.RankedEntry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			Rank:    e.Rank,
			Key:     e.Row.Key,
			Total:   e.Row.Total.Format(),
			Count:   e.Row.Count,
			Average: e.Row.Average().Format(),
		}
	}
	return out
}

func toSummaryResponse(s core.Summary) summaryResponse {
	return summaryResponse{
		Count:   s.Count,
		Total:   s.Total.Format(),
		Average: s.Average().Format(),
	}
}
