package model

import "time"

// Booking statuses. A booking is created confirmed; completed, cancelled,
// and no-show are terminal and absorbing.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingNoShow    = "no-show"
)

// Payment statuses for a booking.
const (
	PaymentNone    = "none"
	PaymentDeposit = "deposit"
	PaymentFull    = "full"
	PaymentPending = "pending"
)

// Payment methods.
const (
	PayMethodCash   = "cash"
	PayMethodUPI    = "upi"
	PayMethodWallet = "wallet"
)

// Booking is a scheduled reservation of a club table for a time range.
// Intervals are half-open: [StartTime, EndTime).
type Booking struct {
	ID           string    `json:"id"`
	ClubID       string    `json:"clubId"`
	TableID      string    `json:"tableId"`
	PlayerID     string    `json:"playerId"`
	PlayerName   string    `json:"playerName"`
	PlayerMobile string    `json:"playerMobile,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	IsRecurring       bool              `json:"isRecurring"`
	RecurringPattern  *RecurringPattern `json:"recurringPattern,omitempty"`
	RecurringSeriesID string            `json:"recurringSeriesId,omitempty"`

	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaymentAmount int64  `json:"paymentAmount,omitempty"`
	InvoiceID     string `json:"invoiceId,omitempty"`

	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        string     `json:"cancelledBy,omitempty"`
}

// RecurringPattern describes how a recurring booking repeats.
type RecurringPattern struct {
	Type           string     `json:"type"` // daily, weekly, monthly, custom
	Interval       int        `json:"interval"`
	DaysOfWeek     []int      `json:"daysOfWeek,omitempty"` // 0=Sun..6=Sat
	EndDate        *time.Time `json:"endDate,omitempty"`
	MaxOccurrences int        `json:"maxOccurrences,omitempty"`
}

// Recurring pattern types.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurCustom  = "custom"
)

// Conflict types reported when a booking cannot be placed.
const (
	ConflictOverlap          = "overlap"
	ConflictTableUnavailable = "table-unavailable"
	ConflictDoubleBooking    = "double-booking"
)

// BookingConflict describes why a candidate booking was rejected.
type BookingConflict struct {
	ConflictType    string   `json:"conflictType"`
	ExistingBooking *Booking `json:"existingBooking,omitempty"`
	Message         string   `json:"message"`
}

// BookingFilter narrows booking queries. Zero-valued fields match everything.
type BookingFilter struct {
	TableID   string
	PlayerID  string
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

// IsTerminal reports whether the booking is in an absorbing state.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}

// Blocks reports whether the booking occupies its table for conflict
// purposes. Cancelled and no-show bookings release their slot: once a
// booking is marked no-show, the remainder of its window is open to
// walk-ins and new bookings, even though the window has not passed.
func (b *Booking) Blocks() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCompleted
}

// Overlaps reports whether the booking's half-open interval intersects
// [start, end). Back-to-back bookings sharing an endpoint do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && b.StartTime.Before(end)
}

// Matches reports whether the booking satisfies the filter.
func (b *Booking) Matches(f BookingFilter) bool {
	if f.TableID != "" && b.TableID != f.TableID {
		return false
	}
	if f.PlayerID != "" && b.PlayerID != f.PlayerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if !f.StartDate.IsZero() && b.StartTime.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && !b.StartTime.Before(f.EndDate) {
		return false
	}
	return true
}

// SameLocalDay reports whether t falls on the given calendar day in the
// day's location. Day filtering compares local calendar dates, not a
// 24-hour window.
func SameLocalDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
