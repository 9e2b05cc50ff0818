package model

import "time"

// Session is a timed occupation of a table billed by elapsed hours. It is
// distinct from a Booking: a booking reserves a slot in advance, a session
// meters live play. A session is open while EndTime is nil. Table occupancy
// is always derived from open sessions, never stored on the table.
type Session struct {
	ID          string      `json:"id"`
	ClubID      string      `json:"clubId"`
	TableID     string      `json:"tableId"`
	TableNumber int         `json:"tableNumber"`
	PlayerName  string      `json:"playerName"`
	StartTime   time.Time   `json:"startTime"`
	HourlyRate  int64       `json:"hourlyRate"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	TotalAmount int64       `json:"totalAmount"`
	FoodOrders  []FoodOrder `json:"foodOrders,omitempty"`
	Paid        bool        `json:"paid"`
}

// FoodOrder is a menu item ordered during a session. Its amount is added
// to the session total at close.
type FoodOrder struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menuItemId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Amount     int64     `json:"amount"`
	OrderedAt  time.Time `json:"orderedAt"`
}

// IsOpen reports whether the session is still running.
func (s *Session) IsOpen() bool {
	return s.EndTime == nil
}

// FoodTotal returns the sum of all food orders on the session.
func (s *Session) FoodTotal() int64 {
	var total int64
	for _, o := range s.FoodOrders {
		total += o.Amount
	}
	return total
}

// BilledHours converts an elapsed duration to billable hours. Any started
// hour bills in full: 61 minutes bills 2 hours, exactly 60 minutes bills 1.
// Non-positive durations bill a single hour as the minimum charge.
func BilledHours(elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 1
	}
	hours := elapsed / time.Hour
	if elapsed%time.Hour > 0 {
		hours++
	}
	return int64(hours)
}

// TableCharge returns the table-time charge for a session ended at the
// given instant. Monotonic in now: a later close never bills less.
func (s *Session) TableCharge(now time.Time) int64 {
	return BilledHours(now.Sub(s.StartTime)) * s.HourlyRate
}
