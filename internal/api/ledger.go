package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) addLedgerRoutes(router *httprouter.Router) {
	router.GET("/api/clubs/:clubid/transactions", s.listTransactions)
	router.POST("/api/clubs/:clubid/payments", s.recordPayment)
	router.GET("/api/clubs/:clubid/expenses", s.listExpenses)
	router.POST("/api/clubs/:clubid/expenses", s.recordExpense)
	router.GET("/api/clubs/:clubid/summary", s.dailySummary)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	txs, err := s.ledger.Transactions(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, txs)
}

type paymentRequest struct {
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tx, err := s.ledger.RecordPayment(r.Context(), ps.ByName("clubid"), req.Amount, req.Method, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, tx)
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	expenses, err := s.ledger.Expenses(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, expenses)
}

type expenseRequest struct {
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (s *Server) recordExpense(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	expense, err := s.ledger.RecordExpense(r.Context(), ps.ByName("clubid"), req.Amount, req.Category, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, expense)
}

func (s *Server) dailySummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = parsed
	}
	summary, err := s.ledger.DailySummary(r.Context(), ps.ByName("clubid"), date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, summary)
}
