package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/pkg/lock"
	"cueclub/internal/repository"
)

// BookingService is the reservation engine. All placements run under the
// target table's lock and inside the store's atomic read-modify-write, so
// the overlap check and the append cannot interleave with a concurrent
// writer: two clients racing for the same slot serialize here and the
// second one gets a ConflictError.
type BookingService struct {
	clubRepo    *repository.ClubRepository
	bookingRepo *repository.BookingRepository
	tableLock   *lock.TableLock
	maxRecur    int
	lockTimeout time.Duration
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(
	clubRepo *repository.ClubRepository,
	bookingRepo *repository.BookingRepository,
	tableLock *lock.TableLock,
	maxRecurringOccurrences int,
	lockTimeout time.Duration,
) *BookingService {
	if maxRecurringOccurrences <= 0 {
		maxRecurringOccurrences = 52
	}
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &BookingService{
		clubRepo:    clubRepo,
		bookingRepo: bookingRepo,
		tableLock:   tableLock,
		maxRecur:    maxRecurringOccurrences,
		lockTimeout: lockTimeout,
	}
}

// CreateBookingInput is the payload for CreateBooking.
type CreateBookingInput struct {
	ClubID       string    `validate:"required"`
	TableID      string    `validate:"required"`
	PlayerID     string    `validate:"omitempty"`
	PlayerName   string    `validate:"required,min=1,max=100"`
	PlayerMobile string    `validate:"omitempty"`
	StartTime    time.Time `validate:"required"`
	EndTime      time.Time `validate:"required"`
	Notes        string
	CreatedBy    string `validate:"required"`

	IsRecurring      bool
	RecurringPattern *model.RecurringPattern
}

// BookingResult reports the outcome of a create request. Skipped lists
// recurring occurrences that conflicted and were not placed.
type BookingResult struct {
	Bookings []model.Booking
	Skipped  []model.BookingConflict
}

// CreateBooking places one booking, or a recurring series, on a table.
// A single booking that overlaps an existing non-cancelled booking is
// rejected with a ConflictError; in a recurring series, conflicting
// occurrences are skipped and reported while the rest are placed.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	if err := validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}
	if !in.StartTime.Before(in.EndTime) {
		return nil, apperr.Validation("endTime", "must be after startTime")
	}

	club, err := s.clubRepo.GetByID(ctx, in.ClubID)
	if err != nil {
		return nil, err
	}
	table := club.TableByID(in.TableID)
	if table == nil {
		return nil, apperr.NotFound("table", in.TableID)
	}
	if !table.IsActive {
		return nil, apperr.Conflict(model.ConflictTableUnavailable,
			fmt.Sprintf("table %d is not active", table.Number), nil)
	}

	occurrences, err := s.expandOccurrences(in)
	if err != nil {
		return nil, err
	}

	result := &BookingResult{}
	err = s.tableLock.WithLockContext(ctx, in.TableID, s.lockTimeout, func() error {
		return s.bookingRepo.Mutate(ctx, in.ClubID, func(bookings *[]model.Booking) error {
			for _, candidate := range occurrences {
				if existing := findOverlap(*bookings, candidate.TableID, candidate.StartTime, candidate.EndTime); existing != nil {
					conflict := model.BookingConflict{
						ConflictType:    model.ConflictOverlap,
						ExistingBooking: existing,
						Message: fmt.Sprintf("table %d already booked from %s to %s",
							table.Number,
							existing.StartTime.Format(time.RFC3339),
							existing.EndTime.Format(time.RFC3339)),
					}
					if !in.IsRecurring {
						return &apperr.ConflictError{Conflict: conflict}
					}
					result.Skipped = append(result.Skipped, conflict)
					continue
				}
				*bookings = append(*bookings, candidate)
				result.Bookings = append(result.Bookings, candidate)
			}
			if len(result.Bookings) == 0 && len(result.Skipped) > 0 {
				return &apperr.ConflictError{Conflict: result.Skipped[0]}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("club_id", in.ClubID).
		Str("table_id", in.TableID).
		Int("placed", len(result.Bookings)).
		Int("skipped", len(result.Skipped)).
		Msg("Booking created")

	return result, nil
}

// findOverlap returns the first non-released booking on the table whose
// half-open interval intersects [start, end), or nil.
func findOverlap(bookings []model.Booking, tableID string, start, end time.Time) *model.Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.TableID != tableID || !b.Blocks() {
			continue
		}
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}

// expandOccurrences turns the input into concrete bookings. A recurring
// input expands according to its pattern, bounded by the pattern's end
// date or occurrence cap and by the service-wide cap.
func (s *BookingService) expandOccurrences(in CreateBookingInput) ([]model.Booking, error) {
	now := time.Now()
	build := func(start, end time.Time, seriesID string) model.Booking {
		return model.Booking{
			ID:                uuid.NewString(),
			ClubID:            in.ClubID,
			TableID:           in.TableID,
			PlayerID:          in.PlayerID,
			PlayerName:        in.PlayerName,
			PlayerMobile:      in.PlayerMobile,
			StartTime:         start,
			EndTime:           end,
			Status:            model.BookingConfirmed,
			Notes:             in.Notes,
			CreatedBy:         in.CreatedBy,
			CreatedAt:         now,
			UpdatedAt:         now,
			IsRecurring:       seriesID != "",
			RecurringPattern:  in.RecurringPattern,
			RecurringSeriesID: seriesID,
			PaymentStatus:     model.PaymentNone,
		}
	}

	if !in.IsRecurring || in.RecurringPattern == nil {
		return []model.Booking{build(in.StartTime, in.EndTime, "")}, nil
	}

	p := in.RecurringPattern
	if p.Interval < 1 {
		return nil, apperr.Validation("recurringPattern.interval", "must be at least 1")
	}
	max := s.maxRecur
	if p.MaxOccurrences > 0 && p.MaxOccurrences < max {
		max = p.MaxOccurrences
	}

	duration := in.EndTime.Sub(in.StartTime)
	seriesID := uuid.NewString()
	var out []model.Booking

	switch p.Type {
	case model.RecurDaily, model.RecurCustom:
		for start := in.StartTime; len(out) < max; start = start.AddDate(0, 0, p.Interval) {
			if p.EndDate != nil && start.After(*p.EndDate) {
				break
			}
			out = append(out, build(start, start.Add(duration), seriesID))
		}
	case model.RecurWeekly:
		days := p.DaysOfWeek
		if len(days) == 0 {
			days = []int{int(in.StartTime.Weekday())}
		}
		wanted := make(map[int]bool, len(days))
		for _, d := range days {
			wanted[d] = true
		}
		// Walk day by day; skip whole weeks according to the interval.
		weekStart := in.StartTime.AddDate(0, 0, -int(in.StartTime.Weekday()))
		horizon := in.StartTime.AddDate(0, 0, (max*p.Interval+1)*7)
		for day := in.StartTime; len(out) < max && day.Before(horizon); day = day.AddDate(0, 0, 1) {
			if p.EndDate != nil && day.After(*p.EndDate) {
				break
			}
			weeksFromStart := int(day.AddDate(0, 0, -int(day.Weekday())).Sub(weekStart).Hours() / (24 * 7))
			if weeksFromStart%p.Interval != 0 || !wanted[int(day.Weekday())] {
				continue
			}
			out = append(out, build(day, day.Add(duration), seriesID))
		}
	case model.RecurMonthly:
		for i, start := 0, in.StartTime; len(out) < max; i++ {
			if p.EndDate != nil && start.After(*p.EndDate) {
				break
			}
			out = append(out, build(start, start.Add(duration), seriesID))
			start = in.StartTime.AddDate(0, (i+1)*p.Interval, 0)
		}
	default:
		return nil, apperr.Validation("recurringPattern.type", "unknown pattern type "+p.Type)
	}

	if len(out) == 0 {
		return nil, apperr.Validation("recurringPattern", "pattern yields no occurrences")
	}
	return out, nil
}

// ListBookingsForDate returns the club's bookings whose start falls on
// the given local calendar day, sorted by start time ascending.
func (s *BookingService) ListBookingsForDate(ctx context.Context, clubID string, date time.Time) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	var out []model.Booking
	for _, b := range bookings {
		if model.SameLocalDay(b.StartTime, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ListBookings returns the club's bookings matching the filter, sorted by
// start time ascending.
func (s *BookingService) ListBookings(ctx context.Context, clubID string, filter model.BookingFilter) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	var out []model.Booking
	for _, b := range bookings {
		if b.Matches(filter) {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetBooking returns one booking.
func (s *BookingService) GetBooking(ctx context.Context, clubID, bookingID string) (*model.Booking, error) {
	return s.bookingRepo.GetByID(ctx, clubID, bookingID)
}

// CancelBooking cancels a confirmed booking. Cancelling an already
// cancelled booking is a no-op returning the unchanged record; other
// terminal states never reopen.
func (s *BookingService) CancelBooking(ctx context.Context, clubID, bookingID, reason, cancelledBy string) (*model.Booking, error) {
	return s.bookingRepo.MutateOne(ctx, clubID, bookingID, func(b *model.Booking) error {
		switch b.Status {
		case model.BookingCancelled:
			return nil // idempotent
		case model.BookingCompleted, model.BookingNoShow:
			return apperr.Validation("status", "cannot cancel a "+b.Status+" booking")
		}
		now := time.Now()
		b.Status = model.BookingCancelled
		b.CancellationReason = reason
		b.CancelledAt = &now
		b.CancelledBy = cancelledBy
		b.UpdatedAt = now
		return nil
	})
}

// CompleteBooking marks a confirmed booking completed. Completion is not
// automatic when the end time elapses; it is an explicit caller action.
func (s *BookingService) CompleteBooking(ctx context.Context, clubID, bookingID string) (*model.Booking, error) {
	return s.bookingRepo.MutateOne(ctx, clubID, bookingID, func(b *model.Booking) error {
		switch b.Status {
		case model.BookingCompleted:
			return nil // idempotent
		case model.BookingCancelled, model.BookingNoShow:
			return apperr.Validation("status", "cannot complete a "+b.Status+" booking")
		}
		b.Status = model.BookingCompleted
		b.UpdatedAt = time.Now()
		return nil
	})
}

// MarkNoShow marks a confirmed booking as a no-show.
func (s *BookingService) MarkNoShow(ctx context.Context, clubID, bookingID string) (*model.Booking, error) {
	return s.bookingRepo.MutateOne(ctx, clubID, bookingID, func(b *model.Booking) error {
		switch b.Status {
		case model.BookingNoShow:
			return nil // idempotent
		case model.BookingCancelled, model.BookingCompleted:
			return apperr.Validation("status", "cannot mark a "+b.Status+" booking as no-show")
		}
		b.Status = model.BookingNoShow
		b.UpdatedAt = time.Now()
		return nil
	})
}

// BookingUpdate holds the updatable booking fields. Nil fields are left
// as-is.
type BookingUpdate struct {
	TableID       *string
	StartTime     *time.Time
	EndTime       *time.Time
	Notes         *string
	PaymentStatus *string
	PaymentMethod *string
	PaymentAmount *int64
}

// UpdateBooking applies a partial update. Re-saving a confirmed booking
// unchanged is allowed; moving it in time or across tables re-runs the
// conflict check against every other blocking booking.
func (s *BookingService) UpdateBooking(ctx context.Context, clubID, bookingID string, upd BookingUpdate) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, clubID, bookingID)
	if err != nil {
		return nil, err
	}

	lockTable := booking.TableID
	if upd.TableID != nil {
		// The destination table must exist and be active, same as on
		// creation.
		club, err := s.clubRepo.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		table := club.TableByID(*upd.TableID)
		if table == nil {
			return nil, apperr.NotFound("table", *upd.TableID)
		}
		if !table.IsActive {
			return nil, apperr.Conflict(model.ConflictTableUnavailable,
				fmt.Sprintf("table %d is not active", table.Number), nil)
		}
		lockTable = *upd.TableID
	}

	moved := upd.TableID != nil || upd.StartTime != nil || upd.EndTime != nil

	var updated model.Booking
	err = s.tableLock.WithLockContext(ctx, lockTable, s.lockTimeout, func() error {
		// One mutate covers both the edit and, for a rescheduled slot,
		// the conflict re-check against the rest of the list; a conflict
		// aborts the update before anything is written.
		return s.bookingRepo.Mutate(ctx, clubID, func(bookings *[]model.Booking) error {
			idx := -1
			for i := range *bookings {
				if (*bookings)[i].ID == bookingID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return apperr.NotFound("booking", bookingID)
			}
			b := (*bookings)[idx]

			if b.IsTerminal() && moved {
				return apperr.Validation("status", "cannot reschedule a "+b.Status+" booking")
			}
			if upd.TableID != nil {
				b.TableID = *upd.TableID
			}
			if upd.StartTime != nil {
				b.StartTime = *upd.StartTime
			}
			if upd.EndTime != nil {
				b.EndTime = *upd.EndTime
			}
			if !b.StartTime.Before(b.EndTime) {
				return apperr.Validation("endTime", "must be after startTime")
			}
			if upd.Notes != nil {
				b.Notes = *upd.Notes
			}
			if upd.PaymentStatus != nil {
				b.PaymentStatus = *upd.PaymentStatus
			}
			if upd.PaymentMethod != nil {
				b.PaymentMethod = *upd.PaymentMethod
			}
			if upd.PaymentAmount != nil {
				b.PaymentAmount = *upd.PaymentAmount
			}
			b.UpdatedAt = time.Now()

			if moved && b.Blocks() {
				for i := range *bookings {
					other := &(*bookings)[i]
					if other.ID == b.ID || other.TableID != b.TableID || !other.Blocks() {
						continue
					}
					if other.Overlaps(b.StartTime, b.EndTime) {
						return apperr.Conflict(model.ConflictOverlap,
							"rescheduled slot overlaps an existing booking", other)
					}
				}
			}

			(*bookings)[idx] = b
			updated = b
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
