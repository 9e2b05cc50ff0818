package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// LedgerRepository handles the append-only transaction and expense
// records. Records are never updated or reversed; corrections are new
// records.
type LedgerRepository struct {
	store store.Store
}

// NewLedgerRepository creates a new LedgerRepository instance.
func NewLedgerRepository(s store.Store) *LedgerRepository {
	return &LedgerRepository{store: s}
}

// AppendTransaction appends a revenue record to the club's ledger.
func (r *LedgerRepository) AppendTransaction(ctx context.Context, clubID string, tx model.Transaction) error {
	key := store.TransactionsKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, func(txs *[]model.Transaction) error {
		*txs = append(*txs, tx)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// Transactions returns all revenue records for a club.
func (r *LedgerRepository) Transactions(ctx context.Context, clubID string) ([]model.Transaction, error) {
	key := store.TransactionsKey(clubID)
	var txs []model.Transaction
	if err := store.GetJSON(ctx, r.store, key, &txs); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	return txs, nil
}

// AppendExpense appends a cost record to the club's ledger.
func (r *LedgerRepository) AppendExpense(ctx context.Context, clubID string, exp model.Expense) error {
	key := store.ExpensesKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, func(exps *[]model.Expense) error {
		*exps = append(*exps, exp)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// Expenses returns all cost records for a club.
func (r *LedgerRepository) Expenses(ctx context.Context, clubID string) ([]model.Expense, error) {
	key := store.ExpensesKey(clubID)
	var exps []model.Expense
	if err := store.GetJSON(ctx, r.store, key, &exps); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	return exps, nil
}
