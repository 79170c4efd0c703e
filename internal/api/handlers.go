package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/ledger"
)

// Service is the application layer the handlers call into.
type Service interface {
	RecordTransaction(ctx context.Context, account, date string, typ ledger.TxnType, amount decimal.Decimal) (*ledger.Transaction, error)
	Transactions(ctx context.Context) ([]ledger.Transaction, error)
	MonthlyTransactions(ctx context.Context, account string, ym ledger.YearMonth) ([]ledger.Transaction, error)
	Statement(ctx context.Context, account string, ym ledger.YearMonth) (*ledger.Statement, error)
	Rules(ctx context.Context) ([]ledger.InterestRule, error)
	SetRule(ctx context.Context, date, ruleID string, rate decimal.Decimal) ([]ledger.InterestRule, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", ledger.ErrInvalidInput, msg)
}

func (h *Handler) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string           `json:"date"`
		Account string           `json:"account"`
		Type    string           `json:"type"`
		Amount  *decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, badRequest("invalid request body"))
		return
	}
	if req.Date == "" || req.Account == "" || req.Type == "" || req.Amount == nil {
		respondWithError(w, badRequest("date, account, type and amount are required"))
		return
	}

	typ, err := ledger.ParseTxnType(req.Type)
	if err != nil {
		respondWithError(w, err)
		return
	}
	txn, err := h.service.RecordTransaction(r.Context(), req.Account, req.Date, typ, *req.Amount)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, txn, "Transaction created successfully")
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.Transactions(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nonNil(txns), "Transactions fetched successfully")
}

// handleMonthlyTransactions serves ?account=AC001&year=2023&month=06.
func (h *Handler) handleMonthlyTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	account, year, month := q.Get("account"), q.Get("year"), q.Get("month")
	if account == "" || year == "" || month == "" {
		respondWithError(w, badRequest("account, year, and month are required"))
		return
	}
	if len(month) == 1 {
		month = "0" + month
	}
	ym, err := ledger.ParseYearMonth(year + month)
	if err != nil {
		respondWithError(w, err)
		return
	}

	txns, err := h.service.MonthlyTransactions(r.Context(), account, ym)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nonNil(txns), "Transactions fetched successfully")
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	ym, err := ledger.ParseYearMonth(chi.URLParam(r, "yearMonth"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	st, err := h.service.Statement(r.Context(), chi.URLParam(r, "account"), ym)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, st, "Statement generated successfully")
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.Rules(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nonNil(rules), "Interest rules fetched successfully")
}

func (h *Handler) handleAddRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string           `json:"date"`
		RuleID string           `json:"ruleId"`
		Rate   *decimal.Decimal `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, badRequest("invalid request body"))
		return
	}
	if req.Date == "" || req.RuleID == "" || req.Rate == nil {
		respondWithError(w, badRequest("please enter all the fields"))
		return
	}

	rules, err := h.service.SetRule(r.Context(), req.Date, req.RuleID, *req.Rate)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rules, "Interest rule added successfully and all rules fetched.")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
