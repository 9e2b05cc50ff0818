package model

// ClubStats is a derived summary recomputed from raw records on every
// read. Nothing here is stored or incrementally maintained.
type ClubStats struct {
	MonthlyRevenue      int64   `json:"monthlyRevenue"`
	ActiveTables        int     `json:"activeTables"`
	TotalPlayers        int     `json:"totalPlayers"`
	TotalFoodOrders     int     `json:"totalFoodOrders"`
	OutstandingPayments int64   `json:"outstandingPayments"`
	TotalBookings       int     `json:"totalBookings"`
	OccupancyRate       float64 `json:"occupancyRate"`
}

// BookingStats summarizes a club's booking history.
type BookingStats struct {
	TotalBookings       int     `json:"totalBookings"`
	ConfirmedBookings   int     `json:"confirmedBookings"`
	CancelledBookings   int     `json:"cancelledBookings"`
	NoShows             int     `json:"noShows"`
	RevenueFromBookings int64   `json:"revenueFromBookings"`
	OccupancyRate       float64 `json:"occupancyRate"`
}

// DailySummary aggregates one calendar day of ledger activity.
type DailySummary struct {
	Date         string           `json:"date"`
	Revenue      int64            `json:"revenue"`
	Expenses     int64            `json:"expenses"`
	Net          int64            `json:"net"`
	ByMethod     map[string]int64 `json:"byMethod"`
	ByCategory   map[string]int64 `json:"byCategory"`
	Transactions int              `json:"transactions"`
	ExpenseCount int              `json:"expenseCount"`
}
