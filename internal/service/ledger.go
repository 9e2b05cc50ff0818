package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/repository"
)

// LedgerService records payments and expenses and produces daily
// summaries. Records are append-only.
type LedgerService struct {
	ledgerRepo *repository.LedgerRepository
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(ledgerRepo *repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// RecordPayment appends a manually recorded payment.
func (s *LedgerService) RecordPayment(ctx context.Context, clubID string, amount int64, method, description string) (*model.Transaction, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount", "must be positive")
	}
	if method == "" {
		method = model.PayMethodCash
	}
	tx := model.Transaction{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Amount:      amount,
		Method:      method,
		Type:        model.TxTypeManual,
		Timestamp:   time.Now(),
		Description: description,
	}
	if err := s.ledgerRepo.AppendTransaction(ctx, clubID, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// RecordExpense appends a cost record.
func (s *LedgerService) RecordExpense(ctx context.Context, clubID string, amount int64, category, description string) (*model.Expense, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount", "must be positive")
	}
	if category == "" {
		return nil, apperr.Validation("category", "required")
	}
	exp := model.Expense{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Amount:      amount,
		Category:    category,
		Date:        time.Now(),
		Description: description,
	}
	if err := s.ledgerRepo.AppendExpense(ctx, clubID, exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// Transactions returns the club's payment records.
func (s *LedgerService) Transactions(ctx context.Context, clubID string) ([]model.Transaction, error) {
	return s.ledgerRepo.Transactions(ctx, clubID)
}

// Expenses returns the club's cost records.
func (s *LedgerService) Expenses(ctx context.Context, clubID string) ([]model.Expense, error) {
	return s.ledgerRepo.Expenses(ctx, clubID)
}

// DailySummary aggregates one local calendar day of ledger activity.
// Wallet spends are excluded from revenue: the money came in when the
// wallet was topped up.
func (s *LedgerService) DailySummary(ctx context.Context, clubID string, date time.Time) (*model.DailySummary, error) {
	txs, err := s.ledgerRepo.Transactions(ctx, clubID)
	if err != nil {
		return nil, err
	}
	exps, err := s.ledgerRepo.Expenses(ctx, clubID)
	if err != nil {
		return nil, err
	}

	dayTxs := lo.Filter(txs, func(tx model.Transaction, _ int) bool {
		return model.SameLocalDay(tx.Timestamp, date) && tx.Type != model.TxTypeWallet
	})
	dayExps := lo.Filter(exps, func(e model.Expense, _ int) bool {
		return model.SameLocalDay(e.Date, date)
	})

	summary := &model.DailySummary{
		Date:         date.Format("2006-01-02"),
		ByMethod:     make(map[string]int64),
		ByCategory:   make(map[string]int64),
		Transactions: len(dayTxs),
		ExpenseCount: len(dayExps),
	}
	for _, tx := range dayTxs {
		summary.Revenue += tx.Amount
		summary.ByMethod[tx.Method] += tx.Amount
	}
	for _, e := range dayExps {
		summary.Expenses += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	summary.Net = summary.Revenue - summary.Expenses
	return summary, nil
}
