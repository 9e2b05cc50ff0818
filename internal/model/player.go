package model

import "time"

// Player is a club customer with a prepaid wallet.
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	WalletBalance int64     `json:"walletBalance"`
	TotalSpent    int64     `json:"totalSpent"`
	SessionsCount int       `json:"sessionsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Transaction types for categorizing money movement.
const (
	TxTypeSession  = "session"   // Session close revenue
	TxTypeBooking  = "booking"   // Booking payment
	TxTypeTopUp    = "topup"     // Wallet top-up
	TxTypeWallet   = "wallet"    // Wallet spend
	TxTypeFood     = "food"      // Food order revenue
	TxTypeManual   = "manual"    // Manually recorded payment
)

// Transaction is an append-only revenue record. Transactions are never
// updated or reversed; corrections are new records.
type Transaction struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"clubId"`
	Amount      int64     `json:"amount"`
	Method      string    `json:"method"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// Expense is an append-only cost record used for daily aggregation.
type Expense struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"clubId"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// InventoryItem tracks stock for a consumable sold at the club.
type InventoryItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentStock int       `json:"currentStock"`
	MinStock     int       `json:"minStock"`
	Unit         string    `json:"unit"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// IsLowStock reports whether the item is at or below its minimum level.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}
